package pagemap

import "testing"

func TestDetect(t *testing.T) {
	t.Run("single sided", func(t *testing.T) {
		// One nominal page per physical page, page number as a token.
		pages := []string{
			"Cenník služieb",
			"Obsah INTERNET .... 4",
			"strana 3",
			"4 INTERNET základné programy",
			"5 pokračovanie",
			"6 ďalší text",
		}
		if mode := Detect(pages); mode != ModeSingleSided {
			t.Errorf("expected %s, got %s", ModeSingleSided, mode)
		}
	})

	t.Run("double sided", func(t *testing.T) {
		// Two nominal pages per physical sheet from page 4 on.
		pages := []string{
			"Cenník služieb",
			"Obsah INTERNET .... 4",
			"4 INTERNET základné programy 5 pokračovanie",
			"6 TELEVÍZIA 7 pokračovanie",
		}
		if mode := Detect(pages); mode != ModeDoubleSided {
			t.Errorf("expected %s, got %s", ModeDoubleSided, mode)
		}
	})

	t.Run("tie falls back to double sided", func(t *testing.T) {
		pages := []string{"a", "b", "c", "d", "e", "f"}
		if mode := Detect(pages); mode != ModeDoubleSided {
			t.Errorf("expected fallback to %s, got %s", ModeDoubleSided, mode)
		}
	})

	t.Run("empty document falls back to double sided", func(t *testing.T) {
		if mode := Detect(nil); mode != ModeDoubleSided {
			t.Errorf("expected fallback to %s, got %s", ModeDoubleSided, mode)
		}
	})
}

func TestMapper_PhysicalIndex(t *testing.T) {
	t.Run("single sided", func(t *testing.T) {
		m := NewMapper(ModeSingleSided)
		cases := map[int]int{1: 0, 2: 1, 3: 2, 4: 3, 10: 9}
		for nominal, want := range cases {
			if got := m.PhysicalIndex(nominal); got != want {
				t.Errorf("nominal %d: expected index %d, got %d", nominal, want, got)
			}
		}
	})

	t.Run("double sided", func(t *testing.T) {
		m := NewMapper(ModeDoubleSided)
		cases := map[int]int{
			1: 0, // cover
			2: 1, // ToC sheet
			3: 1, // ToC overflow shares the sheet
			4: 2,
			5: 2,
			6: 3,
			7: 3,
			8: 4,
		}
		for nominal, want := range cases {
			if got := m.PhysicalIndex(nominal); got != want {
				t.Errorf("nominal %d: expected index %d, got %d", nominal, want, got)
			}
		}
	})
}

func TestMapper_NominalPage(t *testing.T) {
	t.Run("single sided round trip", func(t *testing.T) {
		m := NewMapper(ModeSingleSided)
		for nominal := 1; nominal <= 20; nominal++ {
			if got := m.NominalPage(m.PhysicalIndex(nominal)); got != nominal {
				t.Errorf("nominal %d: round trip gave %d", nominal, got)
			}
		}
	})

	t.Run("double sided returns first of the pair", func(t *testing.T) {
		m := NewMapper(ModeDoubleSided)
		cases := map[int]int{0: 1, 1: 2, 2: 4, 3: 6, 4: 8}
		for physical, want := range cases {
			if got := m.NominalPage(physical); got != want {
				t.Errorf("physical %d: expected nominal %d, got %d", physical, want, got)
			}
		}
	})

	t.Run("double sided round trip for sheet-leading pages", func(t *testing.T) {
		m := NewMapper(ModeDoubleSided)
		for nominal := 4; nominal <= 20; nominal += 2 {
			if got := m.NominalPage(m.PhysicalIndex(nominal)); got != nominal {
				t.Errorf("nominal %d: round trip gave %d", nominal, got)
			}
		}
	})
}

func TestDetectMapper(t *testing.T) {
	pages := []string{
		"Cenník",
		"Obsah",
		"4 INTERNET 5 text",
		"6 TELEVÍZIA 7 text",
	}
	m := DetectMapper(pages)
	if m.Mode() != ModeDoubleSided {
		t.Fatalf("expected %s, got %s", ModeDoubleSided, m.Mode())
	}
	if got := m.PhysicalIndex(4); got != 2 {
		t.Errorf("expected index 2 for nominal 4, got %d", got)
	}
}

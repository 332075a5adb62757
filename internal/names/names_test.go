package names

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Pekka Rinne", "PEKKA RINNE"},
		{"  Filip   Forsberg ", "FILIP FORSBERG"},
		{"Alexandre Burrows", "ALEX BURROWS"},
		{"Alexander Ovechkin", "ALEX OVECHKIN"},
		{"Christopher Tanev", "CHRIS TANEV"},
		{"André Burakovsky", "ANDRE BURAKOVSKY"},
		{"Juuso Pärssinen", "JUUSO PARSSINEN"},
		{"Mitchell Marner", "MITCH MARNER"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestEHIDFor(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"PEKKA RINNE", "PEKKA.RINNE"},
		{"NATHAN HORTON", "NATHAN.HORTON"},
		{"JACOB DE LA ROSE", "JACOB.DE LA ROSE"},
		{"J.T. COMPHER", "J.T. COMPHER"},
	}

	for _, tc := range cases {
		if got := string(EHIDFor(tc.name)); got != tc.want {
			t.Errorf("EHIDFor(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDedup(t *testing.T) {
	t.Run("sebastian aho the defenseman", func(t *testing.T) {
		got := Dedup(Player{EHID: "SEBASTIAN.AHO", Position: "D", Season: 20192020})
		if got != "SEBASTIAN.AHO2" {
			t.Errorf("expected SEBASTIAN.AHO2, got %s", got)
		}
	})

	t.Run("sebastian aho the forward", func(t *testing.T) {
		got := Dedup(Player{EHID: "SEBASTIAN.AHO", Position: "C", Season: 20192020})
		if got != "SEBASTIAN.AHO" {
			t.Errorf("expected SEBASTIAN.AHO, got %s", got)
		}
	})

	t.Run("erik gustafsson by season", func(t *testing.T) {
		if got := Dedup(Player{EHID: "ERIK.GUSTAFSSON", Position: "D", Season: 20152016}); got != "ERIK.GUSTAFSSON2" {
			t.Errorf("expected ERIK.GUSTAFSSON2, got %s", got)
		}
		if got := Dedup(Player{EHID: "ERIK.GUSTAFSSON", Position: "D", Season: 20122013}); got != "ERIK.GUSTAFSSON" {
			t.Errorf("expected ERIK.GUSTAFSSON, got %s", got)
		}
	})

	t.Run("truncated surname", func(t *testing.T) {
		if got := Dedup(Player{EHID: "COLIN.", Season: 20172018}); got != "COLIN.WHITE2" {
			t.Errorf("expected COLIN.WHITE2, got %s", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		p := Player{EHID: "DANIIL.TARASOV", Position: "G", Season: 20212022}
		first := Dedup(p)
		second := Dedup(p)
		if first != second {
			t.Errorf("Dedup is not deterministic: %s vs %s", first, second)
		}
	})
}

func TestStripAccents(t *testing.T) {
	if got := StripAccents("Éric Bélanger"); got != "Eric Belanger" {
		t.Errorf("expected Eric Belanger, got %q", got)
	}
}

package ledgerflow

import "testing"

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want Amount
	}{
		{1.123123, 11231},
		{2.111111, 21111},
		{1.222222, 12222},
		{0.00005, 1},
		{-0.00005, -1},
		{1.00004, 10000},
		{1.00006, 10001},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"1.0", 10000},
		{"2", 20000},
		{"1.5", 15000},
		{"1.123123", 11231},
		{"2.111111", 21111},
		{"1.222222", 12222},
		{"-1.5", -15000},
		{"0", 0},
		{"  3.14  ", 31400},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1.a"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) = nil error, want error", in)
		}
	}
}

func TestAmountString(t *testing.T) {
	cases := []struct {
		in   Amount
		want string
	}{
		{15000, "1.5"},
		{20000, "2.0"},
		{20120, "2.012"},
		{0, "0.0"},
		{-15000, "-1.5"},
		{5000, "0.5"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Amount(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClientExtraction(t *testing.T) {
	tx := Transaction{Kind: Deposit, Customer: 7, Tx: 1, Amount: 100}
	if got := tx.Client(); got != 7 {
		t.Errorf("Client() = %d, want 7", got)
	}
}

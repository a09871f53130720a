package util

import "testing"

func TestParsePositiveInt(t *testing.T) {
    cases := []struct {
        in      string
        want    int
        wantErr bool
    }{
        {"10", 10, false},
        {" 3 ", 3, false},
        {"", 0, true},
        {"   ", 0, true},
        {"0", 0, true},
        {"-4", 0, true},
        {"1.5", 0, true},
        {"ten", 0, true},
    }
    for _, tc := range cases {
        got, err := ParsePositiveInt(tc.in)
        if tc.wantErr {
            if err == nil {
                t.Fatalf("%q: expected error, got %d", tc.in, got)
            }
            continue
        }
        if err != nil {
            t.Fatalf("%q: unexpected error %v", tc.in, err)
        }
        if got != tc.want {
            t.Fatalf("%q: expected %d, got %d", tc.in, tc.want, got)
        }
    }
}

func TestSplitCSV(t *testing.T) {
    got := SplitCSV(" a, ,b ,c")
    if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
        t.Fatalf("unexpected split %v", got)
    }
}

package terminal

import (
	"os"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "desk-1", width: 10, want: "desk-1"},
		{name: "exact", in: "desk-1", width: 6, want: "desk-1"},
		{name: "cut", in: "windowDesktopsChanged", width: 7, want: "window…"},
		{name: "runes", in: "桌面桌面", width: 3, want: "桌面…"},
		{name: "width one", in: "abc", width: 1, want: "…"},
		{name: "no limit", in: "abc", width: 0, want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if IsTerminal(r) {
		t.Error("IsTerminal(pipe) = true, want false")
	}
}

package notify

import "testing"

func TestRenderMessageCommand(t *testing.T) {
	cases := []struct {
		name    string
		command string
		want    string
	}{
		{"both placeholders", `notify-send "%s" "Level: %s"`, `notify-send "Battery is low" "Level: 14"`},
		{"message only", `wall "%s"`, `wall "Battery is low"`},
		{"no placeholders", `beep`, `beep`},
		{"empty template", ``, ``},
		{"extra placeholders stay", `echo %s %s %s`, `echo Battery is low 14 %s`},
	}

	for _, tc := range cases {
		got := RenderMessageCommand(tc.command, "Battery is low", 14)
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestShellRunnerEmptyCommand(t *testing.T) {
	r := NewShellRunner()
	if err := r.Run(""); err != nil {
		t.Fatalf("an empty command must be a no-op: %v", err)
	}
}

func TestShellRunnerRunMessage(t *testing.T) {
	r := NewShellRunner()
	if err := r.RunMessage("true %s %s", "Battery is low", 14); err != nil {
		t.Fatalf("RunMessage failed: %v", err)
	}
}

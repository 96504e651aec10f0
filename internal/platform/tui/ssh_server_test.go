package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHostKeyPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys", "nested")
	want := filepath.Join(dir, "host_key")

	got, err := hostKeyPath(want)
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if got != want {
		t.Errorf("hostKeyPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestSessionLimit(t *testing.T) {
	tests := []struct {
		name     string
		max      int
		attempts int
		admitted int
	}{
		{"limited", 2, 3, 2},
		{"unlimited", 0, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SSHServer{config: SSHServerConfig{MaxSessions: tt.max}}

			admitted := 0
			for range tt.attempts {
				if s.acquire() {
					admitted++
				}
			}
			if admitted != tt.admitted {
				t.Errorf("admitted %d sessions, want %d", admitted, tt.admitted)
			}
			if s.Active() != tt.admitted {
				t.Errorf("Active() = %d, want %d", s.Active(), tt.admitted)
			}

			s.release()
			if tt.max > 0 && !s.acquire() {
				t.Error("slot not reusable after release")
			}
		})
	}
}

func TestNewSSHServerDefaults(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.GameID = ""
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, testServices())
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.config.GameID != "fruitlink" {
		t.Errorf("GameID = %q, want default variant", srv.config.GameID)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}

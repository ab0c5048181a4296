package config

import (
	"strings"
	"testing"
)

func TestParse_FullConfig(t *testing.T) {
	t.Parallel()

	data := []byte(`
listen_addr: "127.0.0.1:9090"
db_path: "relay.db"
providers:
  math:
    command: python3
    args: ["servers/math_server.py"]
    transport: stdio
  terraform:
    command: uvx
    args: ["awslabs.terraform-mcp-server@latest"]
    env:
      FASTMCP_LOG_LEVEL: ERROR
  remote:
    transport: streamable_http
    url: "http://localhost:8765/mcp"
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v; want nil", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:9090", cfg.ListenAddr)
	}
	if cfg.DBPath != "relay.db" {
		t.Errorf("DBPath = %q, want relay.db", cfg.DBPath)
	}
	if len(cfg.Providers) != 3 {
		t.Fatalf("len(Providers) = %d, want 3", len(cfg.Providers))
	}
	if cfg.Providers["terraform"].Env["FASTMCP_LOG_LEVEL"] != "ERROR" {
		t.Errorf("terraform env override not parsed: %#v", cfg.Providers["terraform"].Env)
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`providers: {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v; want nil", err)
	}

	if cfg.ListenAddr != defaultListenAddr {
		t.Errorf("ListenAddr = %q, want default %q", cfg.ListenAddr, defaultListenAddr)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty (journal disabled)", cfg.DBPath)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true with no admin token hash configured")
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv(envKeyListenAddr, "0.0.0.0:7777")
	t.Setenv(envKeyAuthSecret, "env-secret")

	cfg, err := Parse([]byte(`
listen_addr: "127.0.0.1:9090"
auth:
  secret: "file-secret"
providers: {}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v; want nil", err)
	}

	if cfg.ListenAddr != "0.0.0.0:7777" {
		t.Errorf("env override lost: ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("env override lost: Auth.Secret = %q", cfg.Auth.Secret)
	}
}

func TestParse_ProviderValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "stdio without command",
			yaml:    "providers:\n  bad:\n    transport: stdio\n",
			wantErr: "requires a command",
		},
		{
			name:    "streamable_http without url",
			yaml:    "providers:\n  bad:\n    transport: streamable_http\n",
			wantErr: "requires a url",
		},
		{
			name:    "unknown transport",
			yaml:    "providers:\n  bad:\n    command: foo\n    transport: websocket\n",
			wantErr: "unknown transport",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Parse() error = %v; want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestProviderOrder_Sorted(t *testing.T) {
	t.Parallel()

	cfg := Config{Providers: map[string]Provider{
		"weather": {Command: "w"},
		"math":    {Command: "m"},
		"time":    {Command: "t"},
	}}

	got := cfg.ProviderOrder()
	want := []string{"math", "time", "weather"}
	if len(got) != len(want) {
		t.Fatalf("ProviderOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ProviderOrder() = %v, want %v", got, want)
		}
	}
}

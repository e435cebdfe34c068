package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/wai-go/internal/domain"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(Options{})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func generationStub(t *testing.T, reply func(domain.RequestPayload) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload domain.RequestPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		status, body := reply(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestModesRunsWithoutConfig(t *testing.T) {
	t.Setenv("WAI_CONFIG", filepath.Join(t.TempDir(), "missing", "config.yaml"))

	out, _, err := execute(t, "modes")
	if err != nil {
		t.Fatalf("modes error = %v", err)
	}
	for _, want := range []string{"mejorar", "resumir", "traducir", "continuar", "portugués"} {
		if !strings.Contains(out, want) {
			t.Errorf("modes output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(os.Getenv("WAI_CONFIG")); err == nil {
		t.Error("modes should not create a config file")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "wai version ") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigPathHonoursFlag(t *testing.T) {
	path := tempConfig(t)

	out, _, err := execute(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not written: %v", err)
	}
}

func TestConfigDiffAgainstDefaults(t *testing.T) {
	t.Setenv("WAI_ENDPOINT", "")
	path := tempConfig(t)

	out, _, err := execute(t, "--config", path, "config", "diff")
	if err != nil {
		t.Fatalf("config diff error = %v", err)
	}
	if !strings.Contains(out, "No differences") {
		t.Errorf("fresh config diff = %q", out)
	}

	if err := os.WriteFile(path, []byte("preferences:\n  default_mode: continuar\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "--config", path, "config", "diff")
	if err != nil {
		t.Fatalf("config diff error = %v", err)
	}
	if !strings.Contains(out, "continuar") {
		t.Errorf("diff should mention the changed mode:\n%s", out)
	}
}

func TestConfigValidateRejectsBadBackend(t *testing.T) {
	path := tempConfig(t)
	if err := os.WriteFile(path, []byte("history:\n  backend: redis\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "--config", path, "config", "validate"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRootTransformsArguments(t *testing.T) {
	var got domain.RequestPayload
	srv := generationStub(t, func(p domain.RequestPayload) (int, string) {
		got = p
		return http.StatusOK, `{"generatedText":"Bonjour"}`
	})
	t.Setenv("WAI_ENDPOINT", srv.URL+"/api/generate")

	out, _, err := execute(t, "--config", tempConfig(t), "-m", "translate", "-l", "french", "Hello")
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if strings.TrimSpace(out) != "Bonjour" {
		t.Errorf("output = %q, want Bonjour", out)
	}
	if got.Mode != domain.ModeTranslate || got.Text != "Hello" {
		t.Errorf("payload = %+v", got)
	}
	if lang, ok := got.Language(); !ok || lang != domain.LanguageFrench {
		t.Errorf("language = %v, %v", lang, ok)
	}
}

func TestRunCommandReadsStdin(t *testing.T) {
	srv := generationStub(t, func(p domain.RequestPayload) (int, string) {
		return http.StatusOK, `{"generatedText":"short"}`
	})
	t.Setenv("WAI_ENDPOINT", srv.URL+"/api/generate")

	root := NewRootCmd(Options{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("  a very long text  \n"))
	root.SetArgs([]string{"--config", tempConfig(t), "run", "--mode", "resumir"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "short" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunReportsServiceFailure(t *testing.T) {
	srv := generationStub(t, func(p domain.RequestPayload) (int, string) {
		return http.StatusBadGateway, `{"error":"model offline"}`
	})
	t.Setenv("WAI_ENDPOINT", srv.URL+"/api/generate")

	_, _, err := execute(t, "--config", tempConfig(t), "run", "text")
	if err == nil || !strings.Contains(err.Error(), "model offline") {
		t.Fatalf("error = %v, want service failure", err)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	_, _, err := execute(t, "--config", tempConfig(t), "run", "   ")
	if err == nil || !strings.Contains(err.Error(), "nothing to transform") {
		t.Fatalf("error = %v, want validation failure", err)
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	if _, _, err := execute(t, "--config", tempConfig(t), "run", "--mode", "shout", "text"); err == nil {
		t.Fatal("expected unknown mode error")
	}
}

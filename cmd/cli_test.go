package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderContextJSON = `{"addressList":[{"id":138,"name":"Li","provinceId":1,"cityId":72,"countyId":2819,"townId":0,` +
	`"addressDetail":"Road 1","mobile":"13812345678","mobileKey":"mk","email":null}],` +
	`"invoiceInfo":null,"token":"tok-1"}`

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestConfigShowMasksSecrets(t *testing.T) {
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, "http://127.0.0.1:1")

	stdout, _, err := executeCLI(t, home, "--config", configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, configPath)
	assert.Contains(t, stdout, "100012043978")
	assert.Contains(t, stdout, "********")
	assert.NotContains(t, stdout, "pay-secret")
}

func TestRunRejectsIncompleteConfig(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "run", "--now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "item sku is required")
	assert.Contains(t, err.Error(), "worker count must be positive")
}

func TestInvalidLogLevelFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "--log-level", "loud", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSessionStatusWithoutStoredSession(t *testing.T) {
	server := newRemoteServer(t, false)
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, server.URL)

	stdout, _, err := executeCLI(t, home, "--config", configPath, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "session: invalid")
	assert.Contains(t, stdout, "stored: no")
}

func TestLoginPersistsSessionForLaterCommands(t *testing.T) {
	server := newRemoteServer(t, false)
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, server.URL)

	stdout, stderr, err := executeCLI(t, home, "--config", configPath, "login")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "seckill-qrcode.png")
	assert.Contains(t, stdout, "Logged in")

	_, err = os.Stat(filepath.Join(home, "secrets", "sessions", "default.json"))
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "--config", configPath, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "session: valid")
	assert.Contains(t, stdout, "stored: yes")

	stdout, _, err = executeCLI(t, home, "--config", configPath, "session", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session cleared")

	_, err = os.Stat(filepath.Join(home, "secrets", "sessions", "default.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestReservePrintsResultAndMaskedContext(t *testing.T) {
	server := newRemoteServer(t, true)
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, server.URL)

	stdout, stderr, err := executeCLI(t, home, "--config", configPath, "reserve")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "reservation: reserved")
	assert.Contains(t, stdout, "ship to: Li (13*******78), address 138")
	assert.Contains(t, stdout, "invoice: false")
	assert.NotContains(t, stdout, "13812345678")
}

func TestRunNowAcquiresAndRecordsHistory(t *testing.T) {
	server := newRemoteServer(t, true)
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, server.URL)
	attemptsFile := filepath.Join(home, "attempts.jsonl")

	stdout, stderr, err := executeCLI(t, home,
		"--config", configPath,
		"run", "--now", "--workers", "2", "--attempts-file", attemptsFile,
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Flash sale run")
	assert.Contains(t, stdout, ": acquired after 2 attempts")
	assert.Contains(t, stdout, "pay: https://pay.example/1")

	data, err := os.ReadFile(attemptsFile)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"outcome":"success"`)

	stdout, _, err = executeCLI(t, home, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "runs: 1")
	assert.Contains(t, stdout, "acquired")
	assert.Contains(t, stdout, "pay: https://pay.example/1")

	runID := acquiredRunID(t, stdout)
	stdout, _, err = executeCLI(t, home, "--config", configPath, "history", runID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run "+runID)
	assert.Contains(t, stdout, "acquired")

	_, _, err = executeCLI(t, home, "--config", configPath, "history", "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestRunAbortsWhenOrderContextIsNull(t *testing.T) {
	server := newRemoteServerWith(t, true, "null")
	home := t.TempDir()
	configPath := writeConfigFixture(t, home, server.URL)

	_, _, err := executeCLI(t, home, "--config", configPath, "run", "--now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order context payload is null")

	stdout, _, err := executeCLI(t, home, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "aborted")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("TMPDIR", home)

	root := newRootCmdWith(&app{
		now:    time.Now,
		opener: func(context.Context, string) error { return nil },
	})
	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func acquiredRunID(t *testing.T, stdout string) string {
	t.Helper()
	for _, line := range strings.Split(stdout, "\n") {
		rest, ok := strings.CutPrefix(line, "run ")
		if !ok {
			continue
		}
		if id, _, found := strings.Cut(rest, ": acquired"); found {
			return id
		}
	}
	t.Fatalf("no acquired run in output: %s", stdout)
	return ""
}

// syncBuffer is shared by the logger and the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeConfigFixture(t *testing.T, home string, endpoint string) string {
	t.Helper()

	content := fmt.Sprintf(`[item]
sku = "100012043978"
quantity = 1

[buyer]
payment_password = "pay-secret"
eid = "EID"
fp = "FP"

[worker]
count = 1

[auth]
poll_interval = "10ms"
poll_attempts = 3

[session]
dir = %q

[endpoints]
passport = %q
qr = %q
order = %q
item = %q
itemko = %q
marathon = %q
yushou = %q
`, filepath.Join(home, "secrets"), endpoint, endpoint, endpoint, endpoint, endpoint, endpoint, endpoint)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newRemoteServer(t *testing.T, loggedIn bool) *httptest.Server {
	return newRemoteServerWith(t, loggedIn, orderContextJSON)
}

// newRemoteServerWith fakes every remote host on one server. When loggedIn is
// false the order center only accepts the cookie set by the QR flow.
func newRemoteServerWith(t *testing.T, loggedIn bool, orderContext string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server
	host := func() string { return strings.TrimPrefix(server.URL, "http://") }

	mux.HandleFunc("/center/list.action", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("thor"); !loggedIn && (err != nil || c.Value != "signed-in") {
			http.Redirect(w, r, "/new/login.asp", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("orders"))
	})
	mux.HandleFunc("/show", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "wlfstk_smdl", Value: "qr-token", Path: "/"})
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake"))
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `%s({"code":200,"ticket":"T-1"})`, r.URL.Query().Get("callback"))
	})
	mux.HandleFunc("/uc/qrCodeTicketValidation", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "thor", Value: "signed-in", Path: "/", Expires: time.Now().Add(time.Hour)})
		_, _ = w.Write([]byte(`{"returnCode":0}`))
	})
	mux.HandleFunc("/youshouinfo.action", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `fetchJSON({"type":"1","url":"//%s/bespeak/page"})`, host())
	})
	mux.HandleFunc("/bespeak/page", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="bd-right-result">reserved</div></body></html>`))
	})
	mux.HandleFunc("/seckillnew/orderService/pc/init.action", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(orderContext))
	})
	mux.HandleFunc("/itemShowBtn", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `%s({"type":"3","url":"//%s/divide/user_routing?skuId=100012043978"})`, r.URL.Query().Get("callback"), host())
	})
	mux.HandleFunc("/marathon/captcha.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("captcha"))
	})
	mux.HandleFunc("/seckill/seckill.action", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("seckill"))
	})
	mux.HandleFunc("/seckillnew/orderService/pc/submitOrder.action", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"orderId":1,"pcUrl":"https://pay.example/1"}`))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

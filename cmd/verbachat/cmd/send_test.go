package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

type received struct {
	message  string
	fileName string
}

func newChatServer(t *testing.T, status int, reply string) (*httptest.Server, *[]received) {
	t.Helper()
	var got []received

	r := mux.NewRouter()
	r.HandleFunc("/chat/", func(w http.ResponseWriter, req *http.Request) {
		var rec received
		if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
			var payload map[string]string
			_ = json.NewDecoder(req.Body).Decode(&payload)
			rec.message = payload["message"]
		} else if err := req.ParseMultipartForm(1 << 20); err == nil {
			rec.message = req.FormValue("message")
			if files := req.MultipartForm.File["file"]; len(files) > 0 {
				rec.fileName = files[0].Filename
			}
		}
		got = append(got, rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &got
}

func resetFlags() {
	debug, configFile, endpoint, mode, theme = false, "", "", "", ""
	cookies = nil
	sendFile, sendRaw = "", false
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), sendCmd.Flags()} {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// runCLI executes the root command with a config file that disables priming
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runCLIWithConfig(t, "http:\n  prime: false\n", stdin, args...)
}

func runCLIWithConfig(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	cfgPath := filepath.Join(t.TempDir(), "verbachat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(config), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--debug", "--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSendText(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "Hello **there**"}`)

	out, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "--raw", "hi", "bot")
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, "hi bot", (*got)[0].message)
	assert.Contains(t, out, "You (")
	assert.Contains(t, out, "hi bot")
	assert.Contains(t, out, "Assistant (")
	assert.Contains(t, out, "Hello **there**")
}

func TestSendRendersMarkdown(t *testing.T) {
	srv, _ := newChatServer(t, http.StatusOK, `{"bot_response": "# Title\n\nbody text"}`)

	out, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestSendReadsStdin(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "ok"}`)

	_, err := runCLI(t, "piped question\n", "send", "--endpoint", srv.URL+"/chat/")
	require.NoError(t, err)
	require.Len(t, *got, 1)
	assert.Equal(t, "piped question", (*got)[0].message)
}

func TestSendFile(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "got it"}`)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("remember the milk"), 0o644))

	out, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "--file", path)
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, "notes.txt", (*got)[0].fileName)
	assert.Empty(t, (*got)[0].message)
	assert.Contains(t, out, "📎 notes.txt (text/plain")
	assert.Contains(t, out, "got it")
}

func TestSendNothing(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "unused"}`)

	_, err := runCLI(t, "   ", "send", "--endpoint", srv.URL+"/chat/")
	assert.ErrorIs(t, err, widget.ErrNothingToSend)
	assert.Empty(t, *got)
}

func TestSendNothingMakesNoRequests(t *testing.T) {
	var gets, posts int
	r := mux.NewRouter()
	r.HandleFunc("/chat/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			gets++
		} else {
			posts++
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	_, err := runCLIWithConfig(t, "http:\n  prime: true\n", "  \n", "send", "--endpoint", srv.URL+"/chat/")
	assert.ErrorIs(t, err, widget.ErrNothingToSend)
	assert.Zero(t, gets)
	assert.Zero(t, posts)
}

func TestSendPrimesBeforePosting(t *testing.T) {
	var methods []string
	r := mux.NewRouter()
	r.HandleFunc("/chat/", func(w http.ResponseWriter, req *http.Request) {
		methods = append(methods, req.Method)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"bot_response": "hi"}`)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	_, err := runCLIWithConfig(t, "http:\n  prime: true\n", "", "send", "--endpoint", srv.URL+"/chat/", "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, methods)
}

func TestSendBackendFailureIsNotAnError(t *testing.T) {
	srv, _ := newChatServer(t, http.StatusInternalServerError, "oops")

	out, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Something went wrong: Server error: oops (Status: 500)")
}

func TestSendFileInJSONMode(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "unused"}`)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	_, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "--mode", "json", "--file", path)
	assert.ErrorIs(t, err, widget.ErrAttachmentsUnsupported)
	assert.Empty(t, *got)
}

func TestSendJSONMode(t *testing.T) {
	srv, got := newChatServer(t, http.StatusOK, `{"bot_response": "json ok"}`)

	out, err := runCLI(t, "", "send", "--endpoint", srv.URL+"/chat/", "--mode", "json", "--raw", "hey")
	require.NoError(t, err)
	require.Len(t, *got, 1)
	assert.Equal(t, "hey", (*got)[0].message)
	assert.Contains(t, out, "json ok")
}

func TestInvalidCookieFlag(t *testing.T) {
	_, err := runCLI(t, "", "send", "--cookie", "novalue", "hi")
	assert.ErrorContains(t, err, "invalid cookie")
}

func TestInvalidMode(t *testing.T) {
	_, err := runCLI(t, "", "send", "--mode", "xml", "hi")
	assert.ErrorContains(t, err, "unknown submission mode")
}

func TestLogRouting(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantLog bool
	}{
		{name: "debug in config keeps stderr", config: "debug: true\nhttp:\n  prime: false\n", wantLog: false},
		{name: "default writes log file", config: "http:\n  prime: false\n", wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newChatServer(t, http.StatusOK, `{"bot_response": "ok"}`)
			resetFlags()
			t.Cleanup(cleanupLogging)

			wd := t.TempDir()
			cfgPath := filepath.Join(t.TempDir(), "verbachat.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.config), 0o644))

			rootCmd.SetOut(io.Discard)
			rootCmd.SetErr(io.Discard)
			rootCmd.SetArgs([]string{"--wd", wd, "--config", cfgPath, "send", "--endpoint", srv.URL + "/chat/", "hi"})
			require.NoError(t, rootCmd.Execute())

			_, err := os.Stat(filepath.Join(wd, ".verbachat", "verbachat.log"))
			assert.Equal(t, tt.wantLog, err == nil)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "verbachat dev"))
}

func TestPrintTranscript(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
	msgs := []widget.Message{
		{Sender: widget.SenderUser, Kind: widget.KindText, Text: "question", Time: at},
		{Sender: widget.SenderUser, Kind: widget.KindFile, FileName: "cat.png", MIMEType: "image/png", SourcePath: "/tmp/cat.png", Time: at},
		{Sender: widget.SenderAssistant, Kind: widget.KindText, Text: "Error: **bad**", Failed: true, Time: at},
	}

	md, err := markdown.NewRenderer(markdown.PlainConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTranscript(&buf, msgs, md))

	want := "You (03:04 PM):\nquestion\n\n" +
		"You (03:04 PM):\n📎 cat.png (image/png) /tmp/cat.png\n\n" +
		"Assistant (03:04 PM):\nError: **bad**\n"
	assert.Equal(t, want, buf.String())
}

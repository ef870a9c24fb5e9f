package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Update(ctx context.Context) error {
	f.calls = append(f.calls, "update")
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}

func runWithInput(t *testing.T, f *fakeExec, lines ...string) (output, prompts []string) {
	t.Helper()

	origPrintln := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				output = append(output, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrintln })

	origPrint := printFn
	printFn = func(format string, args ...any) (int, error) {
		prompts = append(prompts, fmt.Sprintf(format, args...))
		return 0, nil
	}
	t.Cleanup(func() { printFn = origPrint })

	scanner := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
	return output, prompts
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	runWithInput(t, f, "signup", "login", "whoami", "update", "logout", "exit")

	want := []string{"signup", "login", "whoami", "update", "logout"}
	if len(f.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, f.calls)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, f.calls)
		}
	}
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	f := &fakeExec{}
	out, _ := runWithInput(t, f, "frobnicate", "exit")

	found := false
	for _, s := range out {
		if strings.Contains(s, "Unknown command") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown-command message, got %v", out)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no handler calls, got %v", f.calls)
	}
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	out, _ := runWithInput(t, &fakeExec{}, "help", "login", "help", "exit")

	var helps []string
	for _, s := range out {
		if strings.Contains(s, "Available commands") {
			helps = append(helps, s)
		}
	}
	if len(helps) != 2 {
		t.Fatalf("expected two help lines, got %v", helps)
	}
	if !strings.Contains(helps[0], "signup") || !strings.Contains(helps[1], "logout") {
		t.Fatalf("help output did not follow login state: %v", helps)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	f := &fakeExec{}
	// no exit command; scanner EOF ends the loop
	runWithInput(t, f, "whoami")

	if len(f.calls) != 1 || f.calls[0] != "whoami" {
		t.Fatalf("expected single whoami call, got %v", f.calls)
	}
}

func TestRunREPL_PromptStaysOnInputLine(t *testing.T) {
	_, prompts := runWithInput(t, &fakeExec{}, "exit")

	if len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %v", prompts)
	}
	if prompts[0] != "tb > " {
		t.Fatalf("unexpected prompt %q", prompts[0])
	}
	if strings.HasSuffix(prompts[0], "\n") {
		t.Fatalf("prompt must not end in a newline: %q", prompts[0])
	}
}

func TestRunREPL_EmptyLineIsIgnored(t *testing.T) {
	f := &fakeExec{}
	runWithInput(t, f, "", "   ", "exit")

	if len(f.calls) != 0 {
		t.Fatalf("expected no calls, got %v", f.calls)
	}
}

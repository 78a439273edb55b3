package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission is the outcome of a location permission request.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// PermissionGate is the platform runtime permission for location access.
type PermissionGate interface {
	Request(ctx context.Context) (Permission, error)
}

// StaticPermission answers every request with the same result.
type StaticPermission Permission

func (s StaticPermission) Request(context.Context) (Permission, error) {
	return Permission(s), nil
}

// PromptPermission asks the user on a terminal. Anything other than an
// explicit yes is a denial.
type PromptPermission struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewPromptPermission(in io.Reader, out io.Writer) *PromptPermission {
	return &PromptPermission{in: bufio.NewReader(in), out: out}
}

// Request prints the question and waits for one line. A cancelled ctx returns
// at once; the pending read then consumes and drops the next line.
func (p *PromptPermission) Request(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionUndetermined, err
	}

	type result struct {
		perm Permission
		err  error
	}
	done := make(chan result, 1)

	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		perm, err := p.ask()
		done <- result{perm: perm, err: err}
	}()

	select {
	case <-ctx.Done():
		return PermissionUndetermined, ctx.Err()
	case r := <-done:
		return r.perm, r.err
	}
}

func (p *PromptPermission) ask() (Permission, error) {
	fmt.Fprint(p.out, "Allow weather-now to access this device's location? [y/N]: ")
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		if err == io.EOF {
			return PermissionDenied, nil
		}
		return PermissionUndetermined, fmt.Errorf("read permission answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return PermissionGranted, nil
	default:
		return PermissionDenied, nil
	}
}

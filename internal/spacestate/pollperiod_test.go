// internal/spacestate/pollperiod_test.go
package spacestate

import (
	"context"
	"errors"
	"testing"
)

func TestValidatePollPeriod(t *testing.T) {
	cases := []struct {
		in   string
		want int
		err  error
	}{
		{"0", 0, nil},
		{"5", 5, nil},
		{" 60 ", 60, nil},
		{"600", 600, nil},
		{"4", 0, ErrOutOfRange},
		{"601", 0, ErrOutOfRange},
		{"-5", 0, ErrOutOfRange},
		{"", 0, ErrEmpty},
		{"   ", 0, ErrEmpty},
		{"ten", 0, ErrNotNumber},
		{"12.5", 0, ErrNotNumber},
	}

	for _, tc := range cases {
		got, err := ValidatePollPeriod(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("%q: err got=%v want=%v", tc.in, err, tc.err)
		}
		if got != tc.want {
			t.Fatalf("%q: got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

type fakeDevice struct {
	body string
	puts []string
}

func (d *fakeDevice) Get(ctx context.Context, path string) ([]byte, error) {
	return []byte(d.body), nil
}

func (d *fakeDevice) Put(ctx context.Context, path string) ([]byte, error) {
	d.puts = append(d.puts, path)
	return []byte(`"success"`), nil
}

func TestClient_PollPeriod(t *testing.T) {
	c := NewClient(&fakeDevice{body: `{"poll_period_seconds":30}`})
	n, err := c.PollPeriod(context.Background())
	if err != nil || n != 30 {
		t.Fatalf("got=%d err=%v", n, err)
	}

	c = NewClient(&fakeDevice{body: `"Failed to get space state poll period"`})
	if _, err := c.PollPeriod(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_SetPollPeriod(t *testing.T) {
	d := &fakeDevice{}
	c := NewClient(d)

	if _, err := c.SetPollPeriod(context.Background(), "3"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(d.puts) != 0 {
		t.Fatalf("invalid input reached the device: %v", d.puts)
	}

	n, err := c.SetPollPeriod(context.Background(), "0")
	if err != nil || n != 0 {
		t.Fatalf("disable: got=%d err=%v", n, err)
	}
	if d.puts[0] != PathPollPeriod+"/0" {
		t.Fatalf("unexpected put path %q", d.puts[0])
	}
}

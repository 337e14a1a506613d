package tg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	tgproto "github.com/gotd/td/tg"
	"golang.org/x/term"
)

// ErrSignUpNotSupported is returned when the phone number has no Telegram
// account. Registration happens in an official client, not here.
var ErrSignUpNotSupported = errors.New("phone number is not registered, sign up with an official Telegram client first")

func (c *Client) authorize(ctx context.Context) error {
	flow := auth.NewFlow(&terminalAuth{phone: c.phone, in: bufio.NewReader(os.Stdin)}, auth.SendCodeOptions{})
	return c.tc.Auth().IfNecessary(ctx, flow)
}

// terminalAuth prompts on stderr and reads answers from stdin, keeping
// stdout clean for run output. The 2FA password is read without echo.
type terminalAuth struct {
	phone string
	in    *bufio.Reader
}

func (a *terminalAuth) Phone(_ context.Context) (string, error) {
	if a.phone != "" {
		return a.phone, nil
	}
	return a.prompt("Phone number (international format): ")
}

func (a *terminalAuth) Code(_ context.Context, _ *tgproto.AuthSentCode) (string, error) {
	return a.prompt("Login code: ")
}

func (a *terminalAuth) Password(_ context.Context) (string, error) {
	fmt.Fprint(os.Stderr, "Two-factor password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *terminalAuth) AcceptTermsOfService(_ context.Context, _ tgproto.HelpTermsOfService) error {
	return nil
}

func (a *terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, ErrSignUpNotSupported
}

func (a *terminalAuth) prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

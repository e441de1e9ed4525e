package client

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// Login connects to a novatech server as admin and stores the credentials.
func Login(ctx context.Context) error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	login, err := client.AdminLogin(ctx, cfg.Email, string(password))
	if err != nil {
		return err
	}
	if !login.Success {
		return errors.New("invalid credentials")
	}
	cfg.BearerToken = client.BearerToken()

	fmt.Println("Logged in as " + cfg.Email)
	return SaveConfig(cfg)
}

// Logout disconnects from a novatech server and removes the credentials.
func Logout(ctx context.Context) error {
	client, err := Connect()
	if err != nil {
		return err
	}

	if client.BearerToken() == "" {
		return errors.New("could not logout because session is not defined")
	}

	if err = client.AdminLogout(ctx); err != nil {
		return err
	}

	return errors.Wrap(Remove(), "could not remove credential file")
}

// Connect returns a Client authenticated with the stored credentials.
func Connect() (*Client, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	client, err := NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach novatech endpoint")
	}
	client.SetBearerToken(cfg.BearerToken)

	return client, nil
}

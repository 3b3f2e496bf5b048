package jdhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/seckill-cli/internal/classify"
	"github.com/bnema/seckill-cli/internal/domain"
)

const (
	qrAppID = "133"
	qrSize  = "147"
	// qrTokenCookie is set by the challenge image response and echoed on polls.
	qrTokenCookie = "wlfstk_smdl"
)

func (c *Client) loginPage() string {
	return c.hosts.Passport + "/new/login.asp"
}

// ProbeSession loads the order list without following redirects. Only a
// direct 200 counts as an authenticated session.
func (c *Client) ProbeSession(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.Order + "/center/list.action",
		query:    url.Values{"rid": {c.millis()}},
		referer:  c.loginPage(),
	})
	if err != nil {
		return false, err
	}
	return resp.status == http.StatusOK, nil
}

func (c *Client) IssueChallenge(ctx context.Context) (domain.Challenge, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.QR + "/show",
		query:    url.Values{"appid": {qrAppID}, "size": {qrSize}, "t": {c.millis()}},
		referer:  c.loginPage(),
		redirect: true,
	})
	if err != nil {
		return domain.Challenge{}, err
	}
	if resp.status != http.StatusOK {
		return domain.Challenge{}, fmt.Errorf("challenge image: unexpected status %d", resp.status)
	}
	if len(resp.body) == 0 {
		return domain.Challenge{}, fmt.Errorf("challenge image: empty body")
	}

	return domain.Challenge{Image: resp.body, ContentType: resp.contentType}, nil
}

func (c *Client) PollChallenge(ctx context.Context) (domain.ChallengePoll, error) {
	qrURL, err := url.Parse(c.hosts.QR)
	if err != nil {
		return domain.ChallengePoll{}, fmt.Errorf("parse qr host: %w", err)
	}

	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.QR + "/check",
		query: url.Values{
			"appid":    {qrAppID},
			"callback": {jsonpCallback()},
			"token":    {c.jar.Value(qrURL, qrTokenCookie)},
			"_":        {c.millis()},
		},
		referer:  c.loginPage(),
		redirect: true,
	})
	if err != nil {
		return domain.ChallengePoll{}, err
	}

	return classify.Challenge(string(resp.body))
}

type ticketValidation struct {
	ReturnCode int    `json:"returnCode"`
	URL        string `json:"url"`
}

func (c *Client) ValidateTicket(ctx context.Context, ticket string) error {
	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.Passport + "/uc/qrCodeTicketValidation",
		query:    url.Values{"t": {ticket}},
		referer:  c.loginPage(),
		redirect: true,
	})
	if err != nil {
		return err
	}

	var payload ticketValidation
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return fmt.Errorf("decode ticket validation: %w", err)
	}
	if payload.ReturnCode != 0 {
		return fmt.Errorf("%w: return code %d", domain.ErrTicketRejected, payload.ReturnCode)
	}

	return nil
}

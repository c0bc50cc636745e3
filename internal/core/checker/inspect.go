package checker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/openrdap/rdap"
)

// DomainDetails summarizes the RDAP object for one domain.
type DomainDetails struct {
	Domain     string   `json:"domain"`
	Registered bool     `json:"registered"`
	LDHName    string   `json:"ldh_name,omitempty"`
	Registrar  string   `json:"registrar,omitempty"`
	Status     []string `json:"status,omitempty"`
	Expiration string   `json:"expiration,omitempty"`
}

// Inspector fetches the full RDAP domain object for a single domain,
// including registrar and expiration metadata the batch checker does not
// need. Server overrides the RDAP bootstrap resolution when set.
type Inspector struct {
	Client  *rdap.Client
	Server  string
	Timeout time.Duration
}

// Inspect resolves the RDAP object for domain. An object-does-not-exist
// answer is not an error; it yields Registered=false.
func (i *Inspector) Inspect(ctx context.Context, domain string) (*DomainDetails, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req := rdap.NewDomainRequest(domain)
	if i.Server != "" {
		serverURL, err := url.Parse(i.Server)
		if err != nil {
			return nil, fmt.Errorf("invalid rdap server url: %w", err)
		}
		req = req.WithServer(serverURL)
	}
	if i.Timeout > 0 {
		req.Timeout = i.Timeout
	}
	req = req.WithContext(ctx)

	client := i.Client
	if client == nil {
		client = &rdap.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		if isNotFound(err) {
			return &DomainDetails{Domain: domain}, nil
		}
		return nil, err
	}

	obj, ok := resp.Object.(*rdap.Domain)
	if !ok {
		return nil, errors.New("unexpected rdap response")
	}

	return &DomainDetails{
		Domain:     domain,
		Registered: true,
		LDHName:    obj.LDHName,
		Registrar:  findRegistrar(obj),
		Status:     obj.Status,
		Expiration: findEventDate(obj.Events, "expiration"),
	}, nil
}

func findRegistrar(domain *rdap.Domain) string {
	if domain == nil {
		return ""
	}
	for _, entity := range domain.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" && entity.VCard != nil {
				return entity.VCard.Name()
			}
		}
	}
	return ""
}

func findEventDate(events []rdap.Event, action string) string {
	for _, event := range events {
		if event.Action == action {
			return event.Date
		}
	}
	return ""
}

func isNotFound(err error) bool {
	var clientErr *rdap.ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return clientErr.Type == rdap.ObjectDoesNotExist
}

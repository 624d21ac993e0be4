package ephemeris

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/models"
)

const (
	soapNamespace = "http://www.w3.org/2003/05/soap-envelope"
	serviceURN    = "urn:ephemeris"
)

// Client talks to the ephemeris web service over SOAP 1.2
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new ephemeris client
func NewClient(url string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type param struct {
	name  string
	value string
}

// buildSOAPRequest creates the envelope of one action
func buildSOAPRequest(action string, params ...param) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	env := doc.CreateElement("soap12:Envelope")
	env.CreateAttr("xmlns:soap12", soapNamespace)
	req := env.CreateElement("soap12:Body").CreateElement(action)
	req.CreateAttr("xmlns", serviceURN)
	for _, p := range params {
		req.CreateElement(p.name).SetText(p.value)
	}
	return doc.WriteToBytes()
}

// sendRequest posts an envelope and returns the raw response body
func (c *Client) sendRequest(ctx context.Context, action string, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", serviceURN+"/"+action)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request failed: %w", ErrUnavailable, action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s response: %w", ErrUnavailable, action, err)
	}
	c.log.Debugf("Ephemeris %s XML response: %s", action, string(body))

	// SOAP faults arrive with a 4xx/5xx status and still carry a parseable body
	if resp.StatusCode != http.StatusOK {
		if fault := parseFault(body); fault != nil {
			return nil, fault
		}
		return nil, fmt.Errorf("%w: %s returned status code %d", ErrUnavailable, action, resp.StatusCode)
	}
	return body, nil
}

// parseFault maps a SOAP fault to a provider error, or returns nil
func parseFault(body []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil
	}
	fault := doc.FindElement("//Body/Fault")
	if fault == nil {
		return nil
	}
	reason := ""
	if text := fault.FindElement("./Reason/Text"); text != nil {
		reason = text.Text()
	}
	code := ""
	if detail := fault.FindElement("./Detail/ErrorCode"); detail != nil {
		code = detail.Text()
	}
	switch code {
	case "OutOfRange":
		return fmt.Errorf("%w: %s", ErrOutOfRange, reason)
	case "NoEvent":
		return fmt.Errorf("%w: %s", ErrNoEvent, reason)
	}
	return fmt.Errorf("%w: fault %s: %s", ErrUnavailable, code, reason)
}

// call runs one action and returns its result element
func (c *Client) call(ctx context.Context, action string, params ...param) (*etree.Element, error) {
	envelope, err := buildSOAPRequest(action, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", action, err)
	}
	body, err := c.sendRequest(ctx, action, envelope)
	if err != nil {
		return nil, err
	}
	if fault := parseFault(body); fault != nil {
		return nil, fault
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("%w: failed to parse XML: %v", ErrUnavailable, err)
	}
	result := doc.FindElement("//Body/" + action + "Response/" + action + "Result")
	if result == nil {
		return nil, fmt.Errorf("%w: no %s result found in XML", ErrUnavailable, action)
	}
	return result, nil
}

func floatField(parent *etree.Element, path string) (float64, error) {
	el := parent.FindElement(path)
	if el == nil {
		return 0, fmt.Errorf("%w: %s element not found in XML", ErrUnavailable, path)
	}
	v, err := strconv.ParseFloat(el.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %s: %v", ErrUnavailable, path, err)
	}
	return v, nil
}

func timeField(parent *etree.Element, path string) (time.Time, error) {
	el := parent.FindElement(path)
	if el == nil {
		return time.Time{}, fmt.Errorf("%w: %s element not found in XML", ErrUnavailable, path)
	}
	t, err := time.Parse(time.RFC3339, el.Text())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to parse %s: %v", ErrUnavailable, path, err)
	}
	return t, nil
}

func instantParam(t time.Time) param {
	return param{"Instant", t.UTC().Format(time.RFC3339Nano)}
}

func locationParams(loc models.Location) []param {
	return []param{
		{"Latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64)},
		{"Longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64)},
	}
}

// Position retrieves the tropical sample of a body
func (c *Client) Position(ctx context.Context, instant time.Time, body string) (models.RawSample, error) {
	result, err := c.call(ctx, "Position", instantParam(instant), param{"Body", body})
	if err != nil {
		return models.RawSample{}, err
	}
	var s models.RawSample
	if s.Longitude, err = floatField(result, "./Longitude"); err != nil {
		return models.RawSample{}, err
	}
	if s.Latitude, err = floatField(result, "./Latitude"); err != nil {
		return models.RawSample{}, err
	}
	if s.Distance, err = floatField(result, "./Distance"); err != nil {
		return models.RawSample{}, err
	}
	if s.Speed, err = floatField(result, "./Speed"); err != nil {
		return models.RawSample{}, err
	}
	c.log.Debugf("Retrieved %s position: %.6f", body, s.Longitude)
	return s, nil
}

// Ayanamsa retrieves the Lahiri ayanamsa
func (c *Client) Ayanamsa(ctx context.Context, instant time.Time) (float64, error) {
	result, err := c.call(ctx, "Ayanamsa", instantParam(instant), param{"Mode", "Lahiri"})
	if err != nil {
		return 0, err
	}
	return floatField(result, "./Value")
}

// Houses retrieves the ascendant and the twelve cusps
func (c *Client) Houses(ctx context.Context, instant time.Time, loc models.Location, system models.HouseSystem) (models.HouseCusps, error) {
	params := append([]param{instantParam(instant)}, locationParams(loc)...)
	params = append(params, param{"System", string(system)})
	result, err := c.call(ctx, "Houses", params...)
	if err != nil {
		return models.HouseCusps{}, err
	}

	var h models.HouseCusps
	if h.Ascendant, err = floatField(result, "./Ascendant"); err != nil {
		return models.HouseCusps{}, err
	}
	cusps := result.FindElements("./Cusps/Cusp")
	if len(cusps) != 12 {
		return models.HouseCusps{}, fmt.Errorf("%w: expected 12 cusps, got %d", ErrUnavailable, len(cusps))
	}
	for i, el := range cusps {
		v, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return models.HouseCusps{}, fmt.Errorf("%w: failed to parse cusp %d: %v", ErrUnavailable, i+1, err)
		}
		h.Cusps[i] = v
	}
	return h, nil
}

// RiseSet retrieves sunrise and sunset of a civil date
func (c *Client) RiseSet(ctx context.Context, date time.Time, loc models.Location) (models.RiseSet, error) {
	params := append([]param{
		{"Date", date.Format("2006-01-02")},
		{"Timezone", date.Location().String()},
	}, locationParams(loc)...)
	result, err := c.call(ctx, "RiseSet", params...)
	if err != nil {
		return models.RiseSet{}, err
	}

	var rs models.RiseSet
	if rs.Sunrise, err = timeField(result, "./Sunrise"); err != nil {
		return models.RiseSet{}, err
	}
	if rs.Sunset, err = timeField(result, "./Sunset"); err != nil {
		return models.RiseSet{}, err
	}
	return rs, nil
}

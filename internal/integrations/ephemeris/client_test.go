package ephemeris

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/kundli-service/internal/models"
)

func envelope(action, inner string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
	<soap12:Body>
		<%[1]sResponse xmlns="urn:ephemeris">
			<%[1]sResult>%[2]s</%[1]sResult>
		</%[1]sResponse>
	</soap12:Body>
</soap12:Envelope>`, action, inner)
}

func fault(code, reason string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
	<soap12:Body>
		<soap12:Fault>
			<soap12:Code><soap12:Value>soap12:Sender</soap12:Value></soap12:Code>
			<soap12:Reason><soap12:Text>%s</soap12:Text></soap12:Reason>
			<soap12:Detail><ErrorCode xmlns="urn:ephemeris">%s</ErrorCode></soap12:Detail>
		</soap12:Fault>
	</soap12:Body>
</soap12:Envelope>`, reason, code)
}

// fakeServer answers each SOAP action with a canned body and records requests
type fakeServer struct {
	responses map[string]string
	status    int
	requests  []*etree.Document
	actions   []string
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	doc := etree.NewDocument()
	_ = doc.ReadFromBytes(body)
	f.requests = append(f.requests, doc)
	action := strings.TrimPrefix(r.Header.Get("SOAPAction"), serviceURN+"/")
	f.actions = append(f.actions, action)

	w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = io.WriteString(w, f.responses[action])
}

func newTestClient(t *testing.T, f *fakeServer) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	log, _ := test.NewNullLogger()
	return NewClient(srv.URL, 2*time.Second, log)
}

var birthInstant = time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)

func TestClientPosition(t *testing.T) {
	f := &fakeServer{responses: map[string]string{
		"Position": envelope("Position", `<Longitude>54.6</Longitude><Latitude>-0.0001</Latitude><Distance>1.0107</Distance><Speed>0.96</Speed>`),
	}}
	c := newTestClient(t, f)

	s, err := c.Position(context.Background(), birthInstant, "sun")
	require.NoError(t, err)
	assert.InDelta(t, 54.6, s.Longitude, 1e-12)
	assert.InDelta(t, 0.96, s.Speed, 1e-12)
	assert.InDelta(t, 1.0107, s.Distance, 1e-12)

	require.Len(t, f.requests, 1)
	assert.Equal(t, "Position", f.actions[0])
	assert.Equal(t, "1990-05-15T09:00:00Z", f.requests[0].FindElement("//Position/Instant").Text())
	assert.Equal(t, "sun", f.requests[0].FindElement("//Position/Body").Text())
}

func TestClientAyanamsa(t *testing.T) {
	f := &fakeServer{responses: map[string]string{
		"Ayanamsa": envelope("Ayanamsa", `<Value>23.72</Value>`),
	}}
	c := newTestClient(t, f)

	v, err := c.Ayanamsa(context.Background(), birthInstant)
	require.NoError(t, err)
	assert.InDelta(t, 23.72, v, 1e-12)
	assert.Equal(t, "Lahiri", f.requests[0].FindElement("//Ayanamsa/Mode").Text())
}

func TestClientHouses(t *testing.T) {
	var cusps strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&cusps, "<Cusp>%d.5</Cusp>", i*30)
	}
	f := &fakeServer{responses: map[string]string{
		"Houses": envelope("Houses", `<Ascendant>181.12</Ascendant><Cusps>`+cusps.String()+`</Cusps>`),
	}}
	c := newTestClient(t, f)

	h, err := c.Houses(context.Background(), birthInstant, models.Location{Latitude: 28.6139, Longitude: 77.209}, models.Placidus)
	require.NoError(t, err)
	assert.InDelta(t, 181.12, h.Ascendant, 1e-12)
	assert.InDelta(t, 0.5, h.Cusps[0], 1e-12)
	assert.InDelta(t, 330.5, h.Cusps[11], 1e-12)
	assert.Equal(t, "P", f.requests[0].FindElement("//Houses/System").Text())
	assert.Equal(t, "28.6139", f.requests[0].FindElement("//Houses/Latitude").Text())
}

func TestClientHousesRejectsShortCuspList(t *testing.T) {
	f := &fakeServer{responses: map[string]string{
		"Houses": envelope("Houses", `<Ascendant>181.12</Ascendant><Cusps><Cusp>1</Cusp></Cusps>`),
	}}
	c := newTestClient(t, f)

	_, err := c.Houses(context.Background(), birthInstant, models.Location{}, models.Placidus)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientRiseSet(t *testing.T) {
	f := &fakeServer{responses: map[string]string{
		"RiseSet": envelope("RiseSet", `<Sunrise>1990-05-14T23:59:00Z</Sunrise><Sunset>1990-05-15T13:49:00Z</Sunset>`),
	}}
	c := newTestClient(t, f)
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	rs, err := c.RiseSet(context.Background(), time.Date(1990, 5, 15, 0, 0, 0, 0, ist), models.Location{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)
	assert.True(t, rs.Sunrise.Equal(time.Date(1990, 5, 14, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "1990-05-15", f.requests[0].FindElement("//RiseSet/Date").Text())
	assert.Equal(t, "Asia/Kolkata", f.requests[0].FindElement("//RiseSet/Timezone").Text())
}

func TestClientFaults(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"out of range", http.StatusInternalServerError, fault("OutOfRange", "year 9999 outside tables"), ErrOutOfRange},
		{"no sunrise", http.StatusInternalServerError, fault("NoEvent", "polar day"), ErrNoEvent},
		{"provider fault", http.StatusInternalServerError, fault("Internal", "boom"), ErrUnavailable},
		{"fault with 200", http.StatusOK, fault("OutOfRange", "late"), ErrOutOfRange},
		{"bad gateway without body", http.StatusBadGateway, "", ErrUnavailable},
		{"garbage body", http.StatusOK, "not xml", ErrUnavailable},
		{"missing result", http.StatusOK, envelope("Other", ""), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeServer{status: tt.status, responses: map[string]string{"Ayanamsa": tt.body}}
			c := newTestClient(t, f)

			_, err := c.Ayanamsa(context.Background(), birthInstant)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	log, _ := test.NewNullLogger()
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, log)

	_, err := c.Ayanamsa(context.Background(), birthInstant)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBodyID(t *testing.T) {
	assert.Equal(t, "sun", BodyID(models.Sun, "mean_node"))
	assert.Equal(t, "jupiter", BodyID(models.Jupiter, "mean_node"))
	assert.Equal(t, "true_node", BodyID(models.Rahu, "true_node"))
}

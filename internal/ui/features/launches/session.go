package launches

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
)

const sessionName = "launchdash"

// Session value keys.
const (
	keySessionID   = "sid"
	keySite        = "site"
	keyPayloadLow  = "payload_low"
	keyPayloadHigh = "payload_high"
)

// browserSession is the cookie session of one browser. It remembers the last
// selection so a reload restores the page as it was left.
type browserSession struct {
	store   sessions.Store
	session *sessions.Session
}

// openSession returns the browser's session. An unreadable cookie (for
// example after a secret change) yields a fresh session.
func openSession(store sessions.Store, r *http.Request) *browserSession {
	sess, err := store.Get(r, sessionName)
	if err != nil || sess == nil {
		sess = sessions.NewSession(store, sessionName)
		sess.IsNew = true
	}
	if _, ok := sess.Values[keySessionID].(string); !ok {
		sess.Values[keySessionID] = uuid.NewString()
	}
	return &browserSession{store: store, session: sess}
}

// ID returns the session id used to correlate log lines.
func (s *browserSession) ID() string {
	id, _ := s.session.Values[keySessionID].(string)
	return id
}

// Selection returns the stored selection, or the dashboard's initial
// selection for ds when none is stored.
func (s *browserSession) Selection(ds *dataset.Dataset) filter.Selection {
	sel := filter.DefaultSelection(ds)

	site, okSite := s.session.Values[keySite].(string)
	low, okLow := s.session.Values[keyPayloadLow].(float64)
	high, okHigh := s.session.Values[keyPayloadHigh].(float64)
	if !okSite || !okLow || !okHigh {
		return sel
	}

	sel.Site = site
	sel.Payload = filter.Range{Low: low, High: high}
	return sel.Normalize()
}

// SetSelection stores sel.
func (s *browserSession) SetSelection(sel filter.Selection) {
	s.session.Values[keySite] = sel.Site
	s.session.Values[keyPayloadLow] = sel.Payload.Low
	s.session.Values[keyPayloadHigh] = sel.Payload.High
}

// Save writes the session cookie. It must run before any body is written.
func (s *browserSession) Save(w http.ResponseWriter, r *http.Request) error {
	return s.session.Save(r, w)
}

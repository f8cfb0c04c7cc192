package m3ua

import "github.com/sigtrand/sigtrand/sctp"

// AssocForTest exposes the underlying Association for white-box tests that
// need to speak raw M3UA PDUs from the "peer" side of a pipe.
func (l *Link) AssocForTest() *sctp.Association { return l.assoc }

// SetStateForTest forces the ASP state, bypassing the handshake.
func (l *Link) SetStateForTest(s AspState) { l.setState(s) }

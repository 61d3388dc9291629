package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeerList(t *testing.T) {
	r := Report{Peers: "카카오게임즈; 넷마블, 펄어비스 ,"}
	assert.Equal(t, []string{"카카오게임즈", "넷마블", "펄어비스"}, r.PeerList())

	assert.Nil(t, Report{Peers: "   "}.PeerList())
	assert.Nil(t, Report{}.PeerList())
}

func TestFilingYear(t *testing.T) {
	assert.Equal(t, 2024, Report{FilingDate: "2024-03-15"}.FilingYear())
	assert.Equal(t, 0, Report{FilingDate: "2024/03/15"}.FilingYear())
	assert.Equal(t, 0, Report{}.FilingYear())
}

func TestMultiple(t *testing.T) {
	ev := 8.4
	psr := 2.1
	r := Report{EVEBITDA: &ev, PSR: &psr}

	assert.Equal(t, &ev, r.Multiple("EV/EBITDA"))
	assert.Equal(t, &ev, r.Multiple("ev/ebitda"))
	assert.Equal(t, &psr, r.Multiple(" psr "))
	assert.Nil(t, r.Multiple("PER"))
	assert.Nil(t, r.Multiple("EBIT"))
}

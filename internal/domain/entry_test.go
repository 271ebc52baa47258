package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDsAreMonotonic(t *testing.T) {
	s := NewSession()

	a := s.Add("상품A", "기본형", "10년")
	b := s.Add("상품B", "표준형", "5년")
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	// Removing never frees an ID for reuse.
	require.True(t, s.Remove(a.ID))
	c := s.Add("상품C", "기본형", "10년")
	assert.Equal(t, 3, c.ID)
	assert.Equal(t, 2, s.Len())
}

func TestSessionRemove(t *testing.T) {
	s := NewSession()
	e := s.Add("상품", "형", "10년")

	assert.False(t, s.Remove(99))
	assert.True(t, s.Remove(e.ID))
	assert.False(t, s.Remove(e.ID))
	assert.Equal(t, 0, s.Len())
}

func TestSessionGetEditsInPlace(t *testing.T) {
	s := NewSession()
	e := s.Add("상품", "형", "10년")

	got := s.Get(e.ID)
	require.NotNil(t, got)
	got.Premium = 50_000

	assert.Equal(t, int64(50_000), s.Entries()[0].Premium)
	assert.Nil(t, s.Get(42))
}

func TestNewSessionFromEntries(t *testing.T) {
	s := NewSessionFromEntries([]ContractEntry{
		{Product: "상품A", Premium: 1000},
		{Product: "상품B", Premium: 2000},
	})

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, 2, entries[1].ID)

	// The sequence continues after the seeded entries.
	e := s.Add("상품C", "형", "10년")
	assert.Equal(t, 3, e.ID)
}

func TestPolicyInputsClamp(t *testing.T) {
	p := PolicyInputs{
		Retention1st:   -10,
		Retention13th:  120,
		Retention25th:  30,
		DirectRecruits: -5,
	}
	p.Clamp()

	assert.Equal(t, 0, p.Retention1st)
	assert.Equal(t, 100, p.Retention13th)
	assert.Equal(t, 50, p.Retention25th)
	assert.Equal(t, 0, p.DirectRecruits)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"addressfinder/internal/journey"
	"addressfinder/internal/lookup"
	"addressfinder/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) record(id journey.ID) *journey.Record {
	return &journey.Record{
		SchemaVersion: journey.RecordSchemaVersion,
		ID:            id,
		State:         journey.StateLookup,
		Config:        journey.Config{Version: journey.ConfigVersion, ContinueURL: "https://caller.example/done", UKMode: true},
		Candidates: []lookup.Candidate{
			{ID: "GB1", Lines: []string{"1 High Street"}, Town: "Testford", Postcode: "ZZ1 1ZZ", Country: lookup.Country{Code: "GB", Name: "United Kingdom"}},
		},
	}
}

func (s *InMemoryStoreSuite) TestGetUnknownIsNotFound() {
	_, err := s.store.Get(s.ctx, journey.NewID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestPutThenGetRoundTrips() {
	id := journey.NewID()
	want := s.record(id)
	s.Require().NoError(s.store.Put(s.ctx, id, want))

	got, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *InMemoryStoreSuite) TestGetReturnsACopy() {
	id := journey.NewID()
	s.Require().NoError(s.store.Put(s.ctx, id, s.record(id)))

	first, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	first.State = journey.StateDone

	second, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(journey.StateLookup, second.State)
}

func (s *InMemoryStoreSuite) TestPutOverwrites() {
	id := journey.NewID()
	rec := s.record(id)
	s.Require().NoError(s.store.Put(s.ctx, id, rec))

	rec.State = journey.StateSelect
	s.Require().NoError(s.store.Put(s.ctx, id, rec))

	got, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(journey.StateSelect, got.State)
}

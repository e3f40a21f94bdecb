package biolomics

import (
	"context"

	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/model"
)

// Endpoint names a logical collection on the remote catalog.
type Endpoint int

const (
	EndpointStrain Endpoint = iota
	EndpointSequence
	EndpointGrowthMedium
	EndpointTaxonomy
	EndpointCountry
	EndpointOntobiotope
	EndpointBibliography
)

// ToSerializer converts a domain entity into a record envelope.
type ToSerializer func(ctx context.Context, entity any, r Resolver, update bool) (*Record, error)

// FromSerializer converts a record envelope back into a domain entity.
type FromSerializer func(rec *Record) (any, error)

// endpointSpec couples an endpoint's remote path with its serializer pair.
// Endpoints used only for reference resolution keep the raw envelope.
type endpointSpec struct {
	name string // logical name, used in errors and logs
	path string // URL path segment
	view string // schema TableViewName the endpoint's fields live under
	to   ToSerializer
	from FromSerializer
}

var endpoints = map[Endpoint]endpointSpec{
	EndpointStrain:       {name: "strain", path: "strain", view: "Strains", to: strainTo, from: strainFrom},
	EndpointSequence:     {name: "sequence", path: "sequence", view: "Sequences", to: sequenceTo, from: sequenceFrom},
	EndpointGrowthMedium: {name: "growth_medium", path: "growth_medium", view: "Growth media", to: mediumTo, from: mediumFrom},
	EndpointTaxonomy:     {name: "taxonomy", path: "taxonomy", view: "Taxonomy", to: recordTo, from: recordFrom},
	EndpointCountry:      {name: "country", path: "country", view: "Countries", to: recordTo, from: recordFrom},
	EndpointOntobiotope:  {name: "ontobiotope", path: "ontobiotope", view: "Ontobiotope", to: recordTo, from: recordFrom},
	EndpointBibliography: {name: "bibliography", path: "bibliography", view: "Bibliography", to: publicationTo, from: publicationFrom},
}

// String returns the endpoint's logical name.
func (e Endpoint) String() string {
	if spec, ok := endpoints[e]; ok {
		return spec.name
	}
	return "unknown"
}

func (e Endpoint) spec() (endpointSpec, error) {
	spec, ok := endpoints[e]
	if !ok {
		return endpointSpec{}, errors.New(errors.ErrUnknownEndpoint).
			Category(errors.CategoryState).Component("biolomics").
			Context("endpoint", int(e)).Build()
	}
	return spec, nil
}

func strainTo(ctx context.Context, entity any, r Resolver, update bool) (*Record, error) {
	s, ok := entity.(*model.Strain)
	if !ok {
		return nil, badEntity("strain", entity)
	}
	return StrainToBiolomics(ctx, s, r, update)
}

func strainFrom(rec *Record) (any, error) {
	return StrainFromBiolomics(rec)
}

func mediumTo(ctx context.Context, entity any, _ Resolver, update bool) (*Record, error) {
	m, ok := entity.(*model.GrowthMedium)
	if !ok {
		return nil, badEntity("growth_medium", entity)
	}
	return MediumToBiolomics(m, update)
}

func mediumFrom(rec *Record) (any, error) {
	return MediumFromBiolomics(rec)
}

func sequenceTo(ctx context.Context, entity any, _ Resolver, update bool) (*Record, error) {
	seq, ok := entity.(*model.GenomicSequence)
	if !ok {
		return nil, badEntity("sequence", entity)
	}
	return SequenceToBiolomics(seq, update)
}

func sequenceFrom(rec *Record) (any, error) {
	return SequenceFromBiolomics(rec)
}

func publicationTo(ctx context.Context, entity any, _ Resolver, update bool) (*Record, error) {
	pub, ok := entity.(*model.Publication)
	if !ok {
		return nil, badEntity("bibliography", entity)
	}
	return PublicationToBiolomics(pub, update)
}

func publicationFrom(rec *Record) (any, error) {
	return PublicationFromBiolomics(rec)
}

// recordTo / recordFrom keep the raw envelope for resolution-only endpoints.
func recordTo(_ context.Context, entity any, _ Resolver, _ bool) (*Record, error) {
	rec, ok := entity.(*Record)
	if !ok {
		return nil, badEntity("record", entity)
	}
	return rec, nil
}

func recordFrom(rec *Record) (any, error) {
	return rec, nil
}

func badEntity(endpoint string, entity any) error {
	return errors.Newf("%s endpoint: unexpected entity type %T", endpoint, entity).
		Category(errors.CategoryState).Component("biolomics").Build()
}

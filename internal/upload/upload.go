// Package upload synchronizes parsed workbook content with the remote
// catalog: growth media first, then strains, each inside a client-side
// transaction that rolls recorded creations back on the first failure.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mirri-tools/strainsync/internal/biolomics"
	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/logging"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/parser"
	"github.com/mirri-tools/strainsync/internal/validation"
)

var logger *slog.Logger

func init() {
	logger = logging.ForService("upload")
}

// Catalog is the slice of the catalog client the pipeline depends on.
// *biolomics.Client satisfies it.
type Catalog interface {
	RetrieveByName(ctx context.Context, endpoint biolomics.Endpoint, name string) (any, error)
	ResolveName(ctx context.Context, endpoint biolomics.Endpoint, name string) (*biolomics.Record, error)
	Search(ctx context.Context, endpoint biolomics.Endpoint, query biolomics.SearchQuery) (*biolomics.SearchResult, error)
	Create(ctx context.Context, endpoint biolomics.Endpoint, entity any) (any, error)
	Update(ctx context.Context, endpoint biolomics.Endpoint, entity any) (any, error)
	DeleteByID(ctx context.Context, endpoint biolomics.Endpoint, recordID int) error
	StartTransaction() error
	FinishTransaction()
	Rollback(ctx context.Context)
}

// Outcome classifies what the pipeline did with one item.
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeUpdated     Outcome = "updated"
	OutcomeNotModified Outcome = "not modified"
)

// Counter tallies outcomes for one endpoint.
type Counter map[Outcome]int

// Report is the per-endpoint outcome summary of one upload run.
type Report struct {
	Media   Counter
	Strains Counter
}

// String renders the report as a small text table.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %8s %8s %13s\n", "", "created", "updated", "not modified")
	writeCounterRow(&b, "growth media", r.Media)
	writeCounterRow(&b, "strains", r.Strains)
	return b.String()
}

func writeCounterRow(b *strings.Builder, label string, c Counter) {
	fmt.Fprintf(b, "%-14s %8d %8d %13d\n", label,
		c[OutcomeCreated], c[OutcomeUpdated], c[OutcomeNotModified])
}

// Uploader drives the media-then-strains synchronization.
type Uploader struct {
	catalog Catalog

	// ForceUpdate diffs existing records and pushes changed ones. Without
	// it an existing record is left alone.
	ForceUpdate bool

	// Skip offsets the strain list, resuming a previous partial run.
	Skip int
}

// New returns an Uploader bound to a catalog client.
func New(catalog Catalog) *Uploader {
	return &Uploader{catalog: catalog}
}

// Upload pushes the workbook content to the catalog. Media are uploaded
// before strains so that recommended-media references resolve. Each phase
// runs in its own transaction; the first error rolls the phase back and
// aborts the run.
func (u *Uploader) Upload(ctx context.Context, content *parser.Result) (*Report, error) {
	report := &Report{Media: Counter{}, Strains: Counter{}}

	err := u.inTransaction(ctx, func() error {
		for _, medium := range content.Media {
			outcome, err := u.syncMedium(ctx, medium)
			if err != nil {
				return err
			}
			report.Media[outcome]++
			logger.Info("medium processed", "acronym", medium.Acronym, "outcome", string(outcome))
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	strains := content.Strains
	if u.Skip > 0 {
		if u.Skip >= len(strains) {
			strains = nil
		} else {
			strains = strains[u.Skip:]
		}
		logger.Info("skipping strains", "skip", u.Skip, "remaining", len(strains))
	}

	err = u.inTransaction(ctx, func() error {
		for _, strain := range strains {
			outcome, err := u.syncStrain(ctx, strain)
			if err != nil {
				return err
			}
			report.Strains[outcome]++
			logger.Info("strain processed", "accession", strain.ID.String(), "outcome", string(outcome))
		}
		return nil
	})
	return report, err
}

// inTransaction runs fn inside a catalog transaction. Any error, including
// a cancelled context, triggers a rollback of the recorded creations before
// the error propagates.
func (u *Uploader) inTransaction(ctx context.Context, fn func() error) error {
	if err := u.catalog.StartTransaction(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		logger.Error("upload failed, rolling back", "error", err)
		u.catalog.Rollback(ctx)
		return err
	}
	u.catalog.FinishTransaction()
	return nil
}

// syncMedium creates or updates one growth medium, keyed by its catalog
// name.
func (u *Uploader) syncMedium(ctx context.Context, medium *model.GrowthMedium) (Outcome, error) {
	entity, err := u.catalog.RetrieveByName(ctx, biolomics.EndpointGrowthMedium, medium.CatalogName())
	if err != nil {
		return "", err
	}
	if entity == nil {
		if _, err := u.catalog.Create(ctx, biolomics.EndpointGrowthMedium, medium); err != nil {
			return "", err
		}
		return OutcomeCreated, nil
	}
	if !u.ForceUpdate {
		return OutcomeNotModified, nil
	}

	remote, ok := entity.(*model.GrowthMedium)
	if !ok {
		return "", errors.Newf("unexpected entity type %T for growth medium", entity).
			Category(errors.CategoryGeneric).Component("upload").Build()
	}
	if diff := cmp.Diff(remote, medium, mediumDiffOpts()...); diff == "" {
		return OutcomeNotModified, nil
	}
	medium.RecordID = remote.RecordID
	medium.RecordName = remote.RecordName
	if _, err := u.catalog.Update(ctx, biolomics.EndpointGrowthMedium, medium); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

// syncStrain creates or updates one strain, keyed by its accession number.
// Referenced publications and markers are created first so the strain's
// links resolve.
func (u *Uploader) syncStrain(ctx context.Context, strain *model.Strain) (Outcome, error) {
	remote, err := u.findStrain(ctx, strain.ID.String())
	if err != nil {
		return "", err
	}
	if remote == nil {
		if err := u.ensureReferences(ctx, strain); err != nil {
			return "", err
		}
		if _, err := u.catalog.Create(ctx, biolomics.EndpointStrain, strain); err != nil {
			return "", err
		}
		return OutcomeCreated, nil
	}
	if !u.ForceUpdate {
		return OutcomeNotModified, nil
	}

	// adopt the remote identity before diffing so it never registers as
	// a change by itself
	if strain.RecordID == 0 {
		strain.RecordID = remote.RecordID
	}
	if strain.RecordName == "" {
		strain.RecordName = remote.RecordName
	}
	if len(strain.Synonyms) == 0 {
		strain.Synonyms = remote.Synonyms
	}
	diff := cmp.Diff(remote, strain, strainDiffOpts()...)
	if diff == "" {
		return OutcomeNotModified, nil
	}
	logger.Debug("strain differs from catalog", "accession", strain.ID.String(), "diff", diff)
	if err := u.ensureReferences(ctx, strain); err != nil {
		return "", err
	}
	if _, err := u.catalog.Update(ctx, biolomics.EndpointStrain, strain); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

// findStrain looks a strain up by accession number with an exact-match
// search. A miss returns nil.
func (u *Uploader) findStrain(ctx context.Context, accession string) (*model.Strain, error) {
	result, err := u.catalog.Search(ctx, biolomics.EndpointStrain,
		biolomics.ExactMatchQuery(validation.FieldAccessionNumber, accession))
	if err != nil {
		return nil, err
	}
	if result.Total == 0 || len(result.Records) == 0 {
		return nil, nil
	}
	strain, ok := result.Records[0].(*model.Strain)
	if !ok {
		return nil, errors.Newf("unexpected entity type %T for strain", result.Records[0]).
			Category(errors.CategoryGeneric).Component("upload").Build()
	}
	return strain, nil
}

// ensureReferences gets or creates the strain's publications and markers
// in the catalog and records their remote ids on the local entities.
func (u *Uploader) ensureReferences(ctx context.Context, strain *model.Strain) error {
	for i := range strain.Publications {
		pub := &strain.Publications[i]
		rec, err := u.catalog.ResolveName(ctx, biolomics.EndpointBibliography, pub.Title)
		if err != nil {
			return err
		}
		if rec == nil {
			created, err := u.catalog.Create(ctx, biolomics.EndpointBibliography, pub)
			if err != nil {
				return err
			}
			remote, ok := created.(*model.Publication)
			if !ok {
				return errors.Newf("unexpected entity type %T for publication", created).
					Category(errors.CategoryGeneric).Component("upload").Build()
			}
			pub.RecordID = remote.RecordID
			pub.RecordName = remote.RecordName
			continue
		}
		pub.RecordID = rec.RecordID
		pub.RecordName = rec.RecordName
	}

	for i := range strain.Genetics.Markers {
		marker := &strain.Genetics.Markers[i]
		rec, err := u.catalog.ResolveName(ctx, biolomics.EndpointSequence, marker.MarkerID)
		if err != nil {
			return err
		}
		if rec == nil {
			created, err := u.catalog.Create(ctx, biolomics.EndpointSequence, marker)
			if err != nil {
				return err
			}
			remote, ok := created.(*model.GenomicSequence)
			if !ok {
				return errors.Newf("unexpected entity type %T for sequence", created).
					Category(errors.CategoryGeneric).Component("upload").Build()
			}
			marker.RecordID = remote.RecordID
			marker.RecordName = remote.RecordName
			continue
		}
		marker.RecordID = rec.RecordID
		marker.RecordName = rec.RecordName
	}
	return nil
}

// mediumDiffOpts compares media by content, excluding the remote identity
// and the acronym the record name is derived from.
func mediumDiffOpts() []cmp.Option {
	return []cmp.Option{
		cmpopts.IgnoreFields(model.GrowthMedium{}, "RecordID", "RecordName", "Acronym"),
	}
}

// strainDiffOpts compares strains structurally, ignoring slice order and
// the internal record ids of referenced publications and markers.
func strainDiffOpts() []cmp.Option {
	return []cmp.Option{
		cmpopts.IgnoreFields(model.Publication{}, "ID", "RecordID", "RecordName"),
		cmpopts.IgnoreFields(model.GenomicSequence{}, "RecordID", "RecordName"),
		cmpopts.SortSlices(func(a, b string) bool { return a < b }),
		cmpopts.SortSlices(func(a, b model.StrainID) bool { return a.String() < b.String() }),
		cmpopts.SortSlices(func(a, b model.Publication) bool { return a.Title < b.Title }),
		cmpopts.SortSlices(func(a, b model.GenomicSequence) bool { return a.MarkerID < b.MarkerID }),
		cmpopts.SortSlices(func(a, b model.OrganismType) bool { return a.Code < b.Code }),
		cmp.Comparer(func(a, b daterange.DateRange) bool { return a == b }),
	}
}

// DeleteStrains removes the workbook's strains from the catalog, looked up
// by accession number. Absent strains are skipped.
func DeleteStrains(ctx context.Context, catalog Catalog, strains []*model.Strain) (int, error) {
	deleted := 0
	for _, strain := range strains {
		result, err := catalog.Search(ctx, biolomics.EndpointStrain,
			biolomics.ExactMatchQuery(validation.FieldAccessionNumber, strain.ID.String()))
		if err != nil {
			return deleted, err
		}
		for _, entity := range result.Records {
			remote, ok := entity.(*model.Strain)
			if !ok || remote.RecordID == 0 {
				continue
			}
			if err := catalog.DeleteByID(ctx, biolomics.EndpointStrain, remote.RecordID); err != nil {
				return deleted, err
			}
			deleted++
			logger.Info("strain deleted", "accession", strain.ID.String(), "record_id", remote.RecordID)
		}
	}
	return deleted, nil
}

// DeleteDuplicates removes all but the last catalog record sharing the
// given accession number. It returns the number of deleted records.
func DeleteDuplicates(ctx context.Context, catalog Catalog, accession string) (int, error) {
	result, err := catalog.Search(ctx, biolomics.EndpointStrain,
		biolomics.ExactMatchQuery(validation.FieldAccessionNumber, accession))
	if err != nil {
		return 0, err
	}
	if len(result.Records) <= 1 {
		return 0, nil
	}
	deleted := 0
	for _, entity := range result.Records[:len(result.Records)-1] {
		remote, ok := entity.(*model.Strain)
		if !ok || remote.RecordID == 0 {
			continue
		}
		if err := catalog.DeleteByID(ctx, biolomics.EndpointStrain, remote.RecordID); err != nil {
			return deleted, err
		}
		deleted++
		logger.Info("duplicate strain deleted", "accession", accession, "record_id", remote.RecordID)
	}
	return deleted, nil
}

package places

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/va6996/travelscout/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Provider answers a category query for a place with a single outbound call
type Provider interface {
	Name() string
	Lookup(ctx context.Context, category Category, place string) (string, error)
}

// Resolution is the result of a successful Resolve call
type Resolution struct {
	Category Category
	Place    string
	// Source is the name of the provider that produced Answer
	Source string
	Answer string
	Report string
	// PrimaryFailure is set when the answer came from the fallback provider
	PrimaryFailure error
}

// FellBack reports whether the fallback provider answered
func (r *Resolution) FellBack() bool {
	return r.PrimaryFailure != nil
}

// Resolver asks the primary provider first and the fallback provider only when
// the primary could not answer. It holds no per-call state.
type Resolver struct {
	primary  Provider
	fallback Provider
}

// NewResolver creates a Resolver
func NewResolver(primary, fallback Provider) (*Resolver, error) {
	if primary == nil || fallback == nil {
		return nil, fmt.Errorf("both a primary and a fallback provider are required")
	}
	return &Resolver{primary: primary, fallback: fallback}, nil
}

// primaryOutcome is Answered(answer) when reason is nil, Unanswered(reason) otherwise
type primaryOutcome struct {
	answer string
	reason error
}

func (o primaryOutcome) answered() bool {
	return o.reason == nil
}

// Resolve produces the report for one (category, place) pair. Providers get
// place exactly as given; the report uses it trimmed. When both providers
// fail the returned error is a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, category Category, place string) (*Resolution, error) {
	query := place
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, ErrEmptyPlace
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	log.Infof(ctx, "Resolving %s of %s", category, place)

	primary := r.askPrimary(ctx, category, query)
	if primary.answered() {
		return &Resolution{
			Category: category,
			Place:    place,
			Source:   r.primary.Name(),
			Answer:   primary.answer,
			Report:   fmt.Sprintf("Following are the %s of %s as suggested by %s: %s", category, place, r.primary.Name(), primary.answer),
		}, nil
	}

	log.Warnf(ctx, "%s could not answer %s of %s, falling back to %s: %v", r.primary.Name(), category, place, r.fallback.Name(), primary.reason)

	answer, err := r.fallback.Lookup(ctx, category, query)
	if err != nil {
		log.Errorf(ctx, "Fallback %s failed for %s of %s: %v", r.fallback.Name(), category, place, err)
		return nil, &ResolutionError{
			Category: category,
			Place:    place,
			Primary:  primary.reason,
			Fallback: err,
		}
	}

	return &Resolution{
		Category:       category,
		Place:          place,
		Source:         r.fallback.Name(),
		Answer:         answer,
		Report:         fmt.Sprintf("%s cannot find the details due to %v. \nFollowing are the %s of %s: %s", displayName(r.primary.Name()), primary.reason, category, place, answer),
		PrimaryFailure: primary.reason,
	}, nil
}

func (r *Resolver) askPrimary(ctx context.Context, category Category, place string) primaryOutcome {
	answer, err := r.primary.Lookup(ctx, category, place)
	if err != nil {
		return primaryOutcome{reason: err}
	}
	if strings.TrimSpace(answer) == "" {
		return primaryOutcome{reason: &ProviderError{Provider: r.primary.Name(), Category: category, Err: ErrEmptyResult}}
	}
	return primaryOutcome{answer: answer}
}

// Outcome is Resolve folded into a value: Success(report, source) or Failure(reason)
type Outcome struct {
	Category Category
	Place    string
	Source   string
	Report   string

	// PrimaryFailure is why the primary could not answer, when the fallback did
	PrimaryFailure error
	Failure        error
}

// FellBack reports whether the primary provider failed to answer
func (o Outcome) FellBack() bool {
	if o.PrimaryFailure != nil {
		return true
	}
	var re *ResolutionError
	return errors.As(o.Failure, &re)
}

// OK reports whether the outcome is a success
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Text renders the outcome for the agent
func (o Outcome) Text() string {
	if o.OK() {
		return o.Report
	}
	return fmt.Sprintf("Could not find the %s of %s: %v", o.Category, o.Place, o.Failure)
}

// Outcome resolves and never returns an error; failures become a Failure outcome
func (r *Resolver) Outcome(ctx context.Context, category Category, place string) Outcome {
	res, err := r.Resolve(ctx, category, place)
	if err != nil {
		return Outcome{Category: category, Place: strings.TrimSpace(place), Failure: err}
	}
	return Outcome{
		Category: res.Category,
		Place:    res.Place,
		Source:   res.Source,
		Report:   res.Report,

		PrimaryFailure: res.PrimaryFailure,
	}
}

// IsProviderFailure reports whether err came from a provider rather than from
// input validation
func IsProviderFailure(err error) bool {
	var pe *ProviderError
	var re *ResolutionError
	return errors.As(err, &pe) || errors.As(err, &re)
}

func displayName(name string) string {
	return cases.Title(language.English).String(name)
}

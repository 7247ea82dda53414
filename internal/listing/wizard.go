// Package listing holds the state of the multi-step listing creation form.
package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/notify"
	"ev-marketplace/utils"

	"github.com/go-playground/validator/v10"
)

// Step of the wizard, in order.
type Step int

const (
	StepBasicInfo Step = iota
	StepCategoryDetails
	StepImageUpload
	StepReview
)

var stepNames = [...]string{"basic info", "category details", "image upload", "review"}

func (s Step) String() string {
	if s < StepBasicInfo || s > StepReview {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

var (
	ErrAlreadySubmitted = errors.New("listing: draft already submitted")
	ErrDiscarded        = errors.New("listing: draft discarded")
	ErrImageNotFound    = errors.New("listing: image not found")
)

// Creator publishes a finished draft.
type Creator interface {
	Create(ctx context.Context, req models.CreateListingRequest) (models.Listing, error)
}

// BasicInfo is the first step of the form.
type BasicInfo struct {
	Category    models.Category
	Title       string
	Description string
	Price       float64
	Brand       string
	Model       string
	Year        int
	Condition   string
}

// Wizard collects one listing draft across the form steps.
type Wizard struct {
	compressor *Compressor
	notices    *notify.Center
	validate   *validator.Validate

	mu         sync.Mutex
	step       Step
	draft      models.CreateListingRequest
	submitting bool
	submitted  bool
	discarded  bool
}

// NewWizard returns an empty draft at the first step. notices may be nil.
func NewWizard(compressor *Compressor, notices *notify.Center) *Wizard {
	if compressor == nil {
		compressor = NewCompressor(0, 0)
	}
	return &Wizard{
		compressor: compressor,
		notices:    notices,
		validate:   models.NewValidator(),
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next moves forward one step without validating anything.
func (w *Wizard) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < StepReview {
		w.step++
	}
	return w.step
}

// Back moves back one step.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBasicInfo {
		w.step--
	}
	return w.step
}

// Draft returns a copy of the draft as it would be sent.
func (w *Wizard) Draft() models.CreateListingRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneDraft(w.draft)
}

// SetBasicInfo replaces the first step fields. Switching category drops
// attributes that belong to the previous one.
func (w *Wizard) SetBasicInfo(info BasicInfo) error {
	return w.mutate(func(d *models.CreateListingRequest) error {
		if info.Category != d.Category {
			d.Battery, d.EBike = nil, nil
		}
		d.Category = info.Category
		d.Title = info.Title
		d.Description = info.Description
		d.Price = info.Price
		d.Brand = info.Brand
		d.Model = info.Model
		d.Year = info.Year
		d.Condition = info.Condition
		return nil
	})
}

// SetBatterySpec sets the battery attributes of a battery listing.
func (w *Wizard) SetBatterySpec(spec models.BatterySpec) error {
	return w.mutate(func(d *models.CreateListingRequest) error {
		if d.Category != models.CategoryBattery {
			return categoryMismatch("battery", d.Category)
		}
		d.Battery = &spec
		return nil
	})
}

// SetEBikeSpec sets the e-bike attributes of an e-bike listing.
func (w *Wizard) SetEBikeSpec(spec models.EBikeSpec) error {
	return w.mutate(func(d *models.CreateListingRequest) error {
		if d.Category != models.CategoryEBike {
			return categoryMismatch("e-bike", d.Category)
		}
		d.EBike = &spec
		return nil
	})
}

func categoryMismatch(kind string, c models.Category) error {
	return &marketerrors.ValidationError{
		Fields: []string{"category"},
		Reason: fmt.Sprintf("%s details do not apply to category %q", kind, c),
	}
}

// AddImage compresses r and appends it. The first image becomes primary.
func (w *Wizard) AddImage(r io.Reader) (models.ListingImage, error) {
	if err := w.mutate(func(*models.CreateListingRequest) error { return nil }); err != nil {
		return models.ListingImage{}, err
	}
	// Compression runs outside the lock.
	img, err := w.compressor.Compress(r)
	if err != nil {
		w.report("add image", err)
		return models.ListingImage{}, err
	}
	err = w.mutate(func(d *models.CreateListingRequest) error {
		img.IsPrimary = len(d.Images) == 0
		d.Images = append(d.Images, img)
		return nil
	})
	return img, err
}

// RemoveImage drops the image with id. Removing the primary image promotes
// the new first image, if any.
func (w *Wizard) RemoveImage(id string) error {
	return w.mutate(func(d *models.CreateListingRequest) error {
		idx := indexOf(d.Images, id)
		if idx < 0 {
			return ErrImageNotFound
		}
		wasPrimary := d.Images[idx].IsPrimary
		d.Images = append(d.Images[:idx:idx], d.Images[idx+1:]...)
		if wasPrimary && len(d.Images) > 0 {
			d.Images[0].IsPrimary = true
		}
		return nil
	})
}

// SetPrimary designates the image with id as primary.
func (w *Wizard) SetPrimary(id string) error {
	return w.mutate(func(d *models.CreateListingRequest) error {
		if indexOf(d.Images, id) < 0 {
			return ErrImageNotFound
		}
		for i := range d.Images {
			d.Images[i].IsPrimary = d.Images[i].ID == id
		}
		return nil
	})
}

// Primary returns the id of the primary image, or "" when there is none.
func (w *Wizard) Primary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, img := range w.draft.Images {
		if img.IsPrimary {
			return img.ID
		}
	}
	return ""
}

// Missing lists the fields that still block submission.
func (w *Wizard) Missing() []string {
	w.mu.Lock()
	d := cloneDraft(w.draft)
	w.mu.Unlock()
	return models.InvalidFields(w.validate.Struct(d))
}

// CanSubmit reports whether Submit would send the draft.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	closed := w.submitted || w.discarded || w.submitting
	w.mu.Unlock()
	return !closed && len(w.Missing()) == 0
}

// Submit validates every step and publishes the draft. A draft is sent
// successfully at most once; a failed request leaves it editable.
func (w *Wizard) Submit(ctx context.Context, creator Creator) (models.Listing, error) {
	w.mu.Lock()
	switch {
	case w.discarded:
		w.mu.Unlock()
		return models.Listing{}, ErrDiscarded
	case w.submitted, w.submitting:
		w.mu.Unlock()
		return models.Listing{}, ErrAlreadySubmitted
	}
	d := cloneDraft(w.draft)
	if fields := models.InvalidFields(w.validate.Struct(d)); len(fields) > 0 {
		w.mu.Unlock()
		err := &marketerrors.ValidationError{Fields: fields}
		w.report("submit listing", err)
		return models.Listing{}, err
	}
	w.submitting = true
	w.mu.Unlock()

	listing, err := creator.Create(ctx, d)

	w.mu.Lock()
	w.submitting = false
	if err == nil {
		w.submitted = true
	}
	w.mu.Unlock()

	if err != nil {
		err = fmt.Errorf("listing: create: %w", err)
		w.report("submit listing", err)
		return models.Listing{}, err
	}
	utils.Info("listing created", map[string]any{"listing_id": listing.ID, "category": string(d.Category), "images": len(d.Images)})
	return listing, nil
}

// Discard abandons the draft; later mutations fail with ErrDiscarded.
func (w *Wizard) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return
	}
	w.discarded = true
	w.draft = models.CreateListingRequest{}
}

func (w *Wizard) mutate(fn func(d *models.CreateListingRequest) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.discarded:
		return ErrDiscarded
	case w.submitted, w.submitting:
		return ErrAlreadySubmitted
	}
	return fn(&w.draft)
}

func (w *Wizard) report(action string, err error) {
	if w.notices != nil {
		w.notices.Error(action, err)
	}
}

func indexOf(images []models.ListingImage, id string) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}

func cloneDraft(d models.CreateListingRequest) models.CreateListingRequest {
	if d.Battery != nil {
		b := *d.Battery
		d.Battery = &b
	}
	if d.EBike != nil {
		e := *d.EBike
		d.EBike = &e
	}
	d.Images = append([]models.ListingImage(nil), d.Images...)
	return d
}

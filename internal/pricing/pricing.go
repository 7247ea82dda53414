// Package pricing asks a hosted language model for a price range of a listing.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/notify"
	"ev-marketplace/utils"
)

// Sender is the raw HTTP layer; the completion API does not use the
// marketplace envelope.
type Sender interface {
	Send(ctx context.Context, req httpclient.Request) ([]byte, error)
}

// PriceInput describes the item to price.
type PriceInput struct {
	Category  models.Category
	Title     string
	Brand     string
	Model     string
	Year      int
	Condition string
	Battery   *models.BatterySpec
	EBike     *models.EBikeSpec
}

// InputFromDraft copies the priced attributes out of a listing draft.
func InputFromDraft(d models.CreateListingRequest) PriceInput {
	return PriceInput{
		Category:  d.Category,
		Title:     d.Title,
		Brand:     d.Brand,
		Model:     d.Model,
		Year:      d.Year,
		Condition: d.Condition,
		Battery:   d.Battery,
		EBike:     d.EBike,
	}
}

// Suggestion is a price range in VND.
type Suggestion struct {
	SuggestedPrice float64 `json:"suggestedPrice"`
	MinPrice       float64 `json:"minPrice"`
	MaxPrice       float64 `json:"maxPrice"`
}

// Suggester calls a generateContent style completion endpoint.
type Suggester struct {
	sender  Sender
	model   string
	apiKey  string
	notices *notify.Center
}

// NewSuggester returns a Suggester. notices may be nil.
func NewSuggester(sender Sender, model, apiKey string, notices *notify.Center) *Suggester {
	return &Suggester{sender: sender, model: model, apiKey: apiKey, notices: notices}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type completionRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type completionResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest returns the model's price range for in.
func (s *Suggester) Suggest(ctx context.Context, in PriceInput) (Suggestion, error) {
	sug, err := s.suggest(ctx, in)
	if err != nil {
		if !httpclient.IsCanceled(err) && s.notices != nil {
			s.notices.Error("price suggestion", err)
		}
		return Suggestion{}, err
	}
	utils.Info("price suggested", map[string]any{
		"category": string(in.Category), "suggested": sug.SuggestedPrice, "min": sug.MinPrice, "max": sug.MaxPrice,
	})
	return sug, nil
}

func (s *Suggester) suggest(ctx context.Context, in PriceInput) (Suggestion, error) {
	if s.apiKey == "" {
		return Suggestion{}, &marketerrors.ExternalServiceError{Kind: marketerrors.ExternalInvalidKey, Err: errors.New("no api key configured")}
	}
	if !in.Category.Valid() {
		return Suggestion{}, &marketerrors.ValidationError{Fields: []string{"category"}}
	}

	var body completionRequest
	body.Contents = []content{{Role: "user", Parts: []part{{Text: Prompt(in)}}}}
	body.GenerationConfig.Temperature = 0.2

	raw, err := s.sender.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "models/" + url.PathEscape(s.model) + ":generateContent",
		Query:  url.Values{"key": {s.apiKey}},
		Body:   body,
	})
	if err != nil {
		return Suggestion{}, classify(err, raw)
	}

	var resp completionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Suggestion{}, malformed(err)
	}
	var text strings.Builder
	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	return ParseCompletion(text.String())
}

// Prompt renders the instruction sent to the model.
func Prompt(in PriceInput) string {
	var b strings.Builder
	b.WriteString("You are a pricing assistant for a Vietnamese marketplace of used electric vehicles and batteries.\n")
	b.WriteString("Estimate a fair second-hand price in VND for the item below.\n\n")
	fmt.Fprintf(&b, "Category: %s\n", in.Category)
	writeIf(&b, "Title", in.Title)
	writeIf(&b, "Brand", in.Brand)
	writeIf(&b, "Model", in.Model)
	if in.Year > 0 {
		writeIf(&b, "Year", strconv.Itoa(in.Year))
	}
	writeIf(&b, "Condition", in.Condition)
	if bat := in.Battery; bat != nil {
		fmt.Fprintf(&b, "Voltage: %g V\nCapacity: %g Ah\n", bat.VoltageV, bat.CapacityAh)
		if bat.HealthPercent > 0 {
			fmt.Fprintf(&b, "Battery health: %g%%\n", bat.HealthPercent)
		}
	}
	if eb := in.EBike; eb != nil {
		fmt.Fprintf(&b, "Motor power: %g W\nRange: %g km\n", eb.MotorPowerW, eb.RangeKm)
		if eb.MileageKm > 0 {
			fmt.Fprintf(&b, "Mileage: %g km\n", eb.MileageKm)
		}
	}
	b.WriteString("\nAnswer with JSON only, no prose, in exactly this shape:\n")
	b.WriteString(`{"suggestedPrice": number, "minPrice": number, "maxPrice": number}`)
	return b.String()
}

func writeIf(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

// ParseCompletion extracts the price object from completion text, tolerating
// markdown code fences and surrounding prose.
func ParseCompletion(text string) (Suggestion, error) {
	text = stripFences(text)
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return Suggestion{}, malformed(fmt.Errorf("no JSON object in %q", truncate(text, 80)))
	}

	var fields struct {
		SuggestedPrice *float64 `json:"suggestedPrice"`
		MinPrice       *float64 `json:"minPrice"`
		MaxPrice       *float64 `json:"maxPrice"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &fields); err != nil {
		return Suggestion{}, malformed(err)
	}
	if fields.SuggestedPrice == nil || fields.MinPrice == nil || fields.MaxPrice == nil {
		return Suggestion{}, malformed(errors.New("missing price field"))
	}
	sug := Suggestion{SuggestedPrice: *fields.SuggestedPrice, MinPrice: *fields.MinPrice, MaxPrice: *fields.MaxPrice}
	if sug.SuggestedPrice < 0 || sug.MinPrice < 0 || sug.MaxPrice < 0 {
		return Suggestion{}, malformed(errors.New("negative price"))
	}
	return sug, nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// Drop the language tag line.
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

func classify(err error, raw []byte) error {
	var httpErr *marketerrors.HTTPError
	switch {
	case httpclient.IsCanceled(err):
		return err
	case errors.As(err, &httpErr):
		switch {
		case httpErr.Status == http.StatusTooManyRequests:
			return &marketerrors.ExternalServiceError{Kind: marketerrors.ExternalRateLimited, Err: err}
		case httpErr.Status == http.StatusUnauthorized, httpErr.Status == http.StatusForbidden,
			httpErr.Status == http.StatusBadRequest && mentionsKey(raw):
			return &marketerrors.ExternalServiceError{Kind: marketerrors.ExternalInvalidKey, Err: err}
		}
	}
	return &marketerrors.ExternalServiceError{Kind: marketerrors.ExternalUnavailable, Err: err}
}

func mentionsKey(raw []byte) bool {
	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return false
	}
	msg := strings.ToLower(body.Error.Message)
	return strings.Contains(msg, "api key") || body.Error.Status == "PERMISSION_DENIED"
}

func malformed(err error) error {
	return &marketerrors.ExternalServiceError{Kind: marketerrors.ExternalMalformedCompletion, Err: err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

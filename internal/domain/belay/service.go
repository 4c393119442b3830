package belay

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yanqian/belaycheck/internal/domain/i18n"
	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

// Service turns raw form state into assessments.
type Service interface {
	Assess(ctx context.Context, req AssessRequest) (AssessResponse, error)
	Localize(ctx context.Context, req LocalizeRequest) (ResultView, error)
	Devices(ctx context.Context, lang i18n.Language) []DeviceInfo
}

// Recorder receives one observation per assessment.
type Recorder interface {
	ObserveAssessment(safety, device string)
	ObserveNoResult()
}

type service struct {
	classifier *Classifier
	localizer  i18n.Localizer
	recorder   Recorder
	logger     *slog.Logger
}

// NewService wires up the belay assessment domain.
func NewService(classifier *Classifier, localizer i18n.Localizer, recorder Recorder, logger *slog.Logger) Service {
	return &service{
		classifier: classifier,
		localizer:  localizer,
		recorder:   recorder,
		logger:     logger.With("component", "belay.service"),
	}
}

func (s *service) Assess(_ context.Context, req AssessRequest) (AssessResponse, error) {
	unit, ok := ParseUnit(req.Unit)
	if !ok {
		return AssessResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unit must be kg or lbs", nil)
	}
	device, ok := ParseDevice(req.Device)
	if !ok {
		return AssessResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown belay device "+strconv.Quote(req.Device), nil)
	}
	experience, ok := ParseExperience(req.Experience)
	if !ok {
		return AssessResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "experience must be beginner, intermediate or advanced", nil)
	}
	lang, err := resolveLanguage(req.Language)
	if err != nil {
		return AssessResponse{}, err
	}

	climber, climberOK := req.ClimberWeight.Float()
	belayer, belayerOK := req.BelayerWeight.Float()
	if !climberOK || !belayerOK {
		s.recorder.ObserveNoResult()
		return AssessResponse{Language: lang}, nil
	}

	input := WeightInput{ClimberWeight: climber, BelayerWeight: belayer, Unit: unit}
	result, ok := s.classifier.Classify(input, device, experience, req.UseOhm, lang)
	if !ok {
		s.recorder.ObserveNoResult()
		return AssessResponse{Language: lang}, nil
	}
	s.recorder.ObserveAssessment(string(result.Safety), string(device))
	s.logger.Debug("assessment computed",
		"device", device,
		"experience", experience,
		"unit", unit,
		"use_ohm", req.UseOhm,
		"safety", result.Safety,
		"percent_diff", Round1(result.PercentDiff),
	)

	view := result.View()
	return AssessResponse{Result: &view, Language: lang}, nil
}

func (s *service) Localize(_ context.Context, req LocalizeRequest) (ResultView, error) {
	lang, err := resolveLanguage(req.Language)
	if err != nil {
		return ResultView{}, err
	}
	safety, ok := ParseSafety(string(req.Result.Safety))
	if !ok {
		return ResultView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "result.safety must be safe, caution or unsafe", nil)
	}
	device, ok := ParseDevice(string(req.Result.Device))
	if !ok {
		return ResultView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown belay device "+strconv.Quote(string(req.Result.Device)), nil)
	}
	if !req.Result.IsHeavierClimber && safety != Safe {
		return ResultView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "a heavier belayer is always safe", nil)
	}
	if err := checkVerdictFlags(req.Result); err != nil {
		return ResultView{}, err
	}

	existing := Result{
		Verdict: Verdict{
			Safety:                      safety,
			Device:                      device,
			IsHeavierClimber:            req.Result.IsHeavierClimber,
			SignificantlyHeavierBelayer: req.Result.SignificantlyHeavierBelayer,
			EqualWeight:                 req.Result.EqualWeight,
		},
		WeightDiff:  req.Result.WeightDiff,
		PercentDiff: req.Result.PercentDiff,
	}
	return s.classifier.Localize(existing, lang).View(), nil
}

func (s *service) Devices(_ context.Context, lang i18n.Language) []DeviceInfo {
	out := make([]DeviceInfo, 0, len(Devices))
	for _, d := range Devices {
		profile, ok := d.Profile()
		if !ok {
			continue
		}
		info := DeviceInfo{
			ID:       d,
			Name:     s.localizer.Text(lang, string(d)),
			Category: profile.Category,
			Legacy:   profile.Legacy,
			MaxDiff:  profile.Base.Max,
			MinDiff:  profile.Base.Min,
			Tips:     profile.TipsFor(lang),
		}
		if profile.Ohm != nil {
			maxOhm, minOhm := profile.Ohm.Max, profile.Ohm.Min
			info.MaxDiffWithOhm = &maxOhm
			info.MinDiffWithOhm = &minOhm
		}
		out = append(out, info)
	}
	return out
}

// checkVerdictFlags rejects a result whose flags contradict its numbers. The
// numbers are the rounded ones from the view, so the thresholds compare
// inclusively where rounding could land exactly on them.
func checkVerdictFlags(v ResultView) error {
	if v.WeightDiff < 0 || v.PercentDiff < 0 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "result differences cannot be negative", nil)
	}
	if v.EqualWeight != (v.WeightDiff == 0) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "result.equalWeight does not match result.weightDiff", nil)
	}
	switch {
	case v.SignificantlyHeavierBelayer && v.IsHeavierClimber:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "a heavier climber cannot have a significantly heavier belayer", nil)
	case v.SignificantlyHeavierBelayer && v.PercentDiff < significantBelayerPercent:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "result.significantlyHeavierBelayer does not match result.percentDiff", nil)
	case !v.SignificantlyHeavierBelayer && !v.IsHeavierClimber && v.PercentDiff > significantBelayerPercent:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "result.significantlyHeavierBelayer does not match result.percentDiff", nil)
	}
	return nil
}

func resolveLanguage(raw string) (i18n.Language, error) {
	if strings.TrimSpace(raw) == "" {
		return i18n.Fallback, nil
	}
	lang, ok := i18n.ParseLanguage(raw)
	if !ok {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "language must be en, ms or zh", nil)
	}
	return lang, nil
}

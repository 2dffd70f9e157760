package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"bloodportal/internal/models"
	"bloodportal/internal/services"
)

var registerOnce sync.Once

// registerValidators adds the portal's binding tags to gin's validator:
// bloodgroup, component, campstatus, isodate (YYYY-MM-DD) and hhmm (HH:MM).
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("[ERROR] registerValidators: gin validator engine is %T, custom tags unavailable", binding.Validator.Engine())
			return
		}
		rules := map[string]validator.Func{
			"bloodgroup": func(fl validator.FieldLevel) bool {
				return models.BloodGroup(fl.Field().String()).IsValid()
			},
			"component": func(fl validator.FieldLevel) bool {
				return models.Component(fl.Field().String()).IsValid()
			},
			"campstatus": func(fl validator.FieldLevel) bool {
				return models.CampStatus(fl.Field().String()).IsValid()
			},
			"isodate": func(fl validator.FieldLevel) bool {
				_, err := time.Parse(models.DateLayout, fl.Field().String())
				return err == nil
			},
			"hhmm": func(fl validator.FieldLevel) bool {
				_, err := time.Parse(models.TimeLayout, fl.Field().String())
				return err == nil
			},
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				log.Printf("[ERROR] registerValidators: %s: %v", tag, err)
			}
		}
	})
}

// validationMessage turns binding errors into one readable line per field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not a valid %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// parseBloodGroups flattens repeated and comma separated query values into
// canonical groups, first occurrence first. An unescaped '+' arrives as a
// space, so a trailing space is read back as '+'.
func parseBloodGroups(values []string) ([]models.BloodGroup, error) {
	var out []models.BloodGroup
	seen := make(map[models.BloodGroup]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			raw := strings.TrimLeft(part, " \t")
			trimmed := strings.TrimRight(raw, " \t")
			if trimmed == "" {
				continue
			}
			if trimmed != raw && !strings.HasSuffix(trimmed, "+") && !strings.HasSuffix(trimmed, "-") {
				trimmed += "+"
			}
			group := models.BloodGroup(strings.ToUpper(trimmed))
			if !group.IsValid() {
				return nil, fmt.Errorf("%w: %q", services.ErrInvalidBloodGroup, strings.TrimSpace(part))
			}
			if !seen[group] {
				seen[group] = true
				out = append(out, group)
			}
		}
	}
	if len(out) == 0 {
		return nil, services.ErrBloodGroupRequired
	}
	return out, nil
}

// parseBloodGroup is parseBloodGroups for endpoints that take one group.
func parseBloodGroup(value string) (models.BloodGroup, error) {
	groups, err := parseBloodGroups([]string{value})
	if err != nil {
		return "", err
	}
	if len(groups) > 1 {
		return "", fmt.Errorf("%w: only one blood group may be given", services.ErrInvalidBloodGroup)
	}
	return groups[0], nil
}

// validateSchedule checks what the binding tags cannot: the camp is not in
// the past and ends after it starts. Camp dates are calendar days in loc.
func validateSchedule(date, start, end string, now time.Time, loc *time.Location) error {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return fmt.Errorf("date must not be in the past")
	}
	from, err := time.Parse(models.TimeLayout, start)
	if err != nil {
		return fmt.Errorf("startTime must be HH:MM")
	}
	to, err := time.Parse(models.TimeLayout, end)
	if err != nil {
		return fmt.Errorf("endTime must be HH:MM")
	}
	if !to.After(from) {
		return fmt.Errorf("endTime must be after startTime")
	}
	return nil
}

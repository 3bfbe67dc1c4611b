package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	procNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	varNamePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("proc_name", func(fl validator.FieldLevel) bool {
			return procNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("var_name", func(fl validator.FieldLevel) bool {
			return varNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return stepwiseerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	declaredVars := make(map[string]struct{}, len(cfg.Vars))
	for i, declared := range cfg.Vars {
		if _, exists := declaredVars[declared.Name]; exists {
			return stepwiseerrors.NewValidationError(fieldForVar(i, "name"), fmt.Sprintf("duplicate var %q", declared.Name), nil)
		}
		declaredVars[declared.Name] = struct{}{}
	}

	procIndex := make(map[string]int, len(cfg.Procedures))
	for i, proc := range cfg.Procedures {
		if _, exists := procIndex[proc.Name]; exists {
			return stepwiseerrors.NewValidationError(fieldForProcedure(i, "name"), fmt.Sprintf("duplicate procedure name %q", proc.Name), nil)
		}
		procIndex[proc.Name] = i

		for j, step := range proc.Steps {
			if err := validateStepRefs(step, declaredVars, i, j); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateStepRefs checks that every {{name}} reference in a step resolves
// to a declared var.
func validateStepRefs(step Step, declared map[string]struct{}, procIdx, stepIdx int) error {
	check := func(text, field string) error {
		for _, name := range References(text) {
			if _, ok := declared[name]; !ok {
				return stepwiseerrors.NewValidationError(
					fieldForStep(procIdx, stepIdx, field),
					fmt.Sprintf("references undeclared var %q", name),
					nil,
				)
			}
		}
		return nil
	}

	if err := check(step.Command, "command"); err != nil {
		return err
	}
	if err := check(step.WorkDir, "workdir"); err != nil {
		return err
	}
	for key, value := range step.Env {
		if err := check(value, "env."+key); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return stepwiseerrors.NewValidationError(field, msg, err)
	}

	return stepwiseerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForProcedure(index int, field string) string {
	return fmt.Sprintf("procedures[%d].%s", index, field)
}

func fieldForStep(procIdx, stepIdx int, field string) string {
	return fmt.Sprintf("procedures[%d].steps[%d].%s", procIdx, stepIdx, field)
}

func fieldForVar(index int, field string) string {
	return fmt.Sprintf("vars[%d].%s", index, field)
}

// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/validation"
	"fanclub/pkg/registry"

	aca "fanclub/internal/workers/artist/artist-compute-analytics"
	acc "fanclub/internal/workers/artist/artist-create-content"
	amt "fanclub/internal/workers/artist/artist-manage-tier"
	fns "fanclub/internal/workers/communication/fan-notify-subscription"
	fcs "fanclub/internal/workers/listener/fan-cancel-subscription"
	fct "fanclub/internal/workers/listener/fan-change-tier"
	fca "fanclub/internal/workers/listener/fan-check-content-access"
	fsa "fanclub/internal/workers/listener/fan-search-artists"
	fsu "fanclub/internal/workers/listener/fan-subscribe"
)

const registryVersion = "1.0.0"

type workerSpec struct {
	taskType    string
	displayName string
	description string
	category    string
	input       validation.JSONSchema
	output      validation.JSONSchema
	timeout     time.Duration
	errorCodes  []errors.ErrorCode
	tags        []string
}

func workerSpecs() []workerSpec {
	return []workerSpec{
		{
			fsu.TaskType, "Subscribe Fan", "Subscribes a fan to an artist tier, reactivating a canceled subscription",
			"listener", fsu.GetInputSchema(), fsu.GetOutputSchema(), fsu.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeUserNotFound, errors.ErrCodeArtistNotFound, errors.ErrCodeTierNotFound, errors.ErrCodeTierArtistMismatch, errors.ErrCodeSubscriptionsDisabled, errors.ErrCodeValidationFailed},
			[]string{"subscription"},
		},
		{
			fcs.TaskType, "Cancel Subscription", "Cancels a fan's active subscription to an artist",
			"listener", fcs.GetInputSchema(), fcs.GetOutputSchema(), fcs.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeSubscriptionNotFound, errors.ErrCodeValidationFailed},
			[]string{"subscription"},
		},
		{
			fct.TaskType, "Change Tier", "Moves an active subscription to another tier of the same artist",
			"listener", fct.GetInputSchema(), fct.GetOutputSchema(), fct.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeSubscriptionNotFound, errors.ErrCodeTierNotFound, errors.ErrCodeTierArtistMismatch, errors.ErrCodeValidationFailed},
			[]string{"subscription"},
		},
		{
			fca.TaskType, "Check Content Access", "Decides whether a fan can open exclusive content",
			"listener", fca.GetInputSchema(), fca.GetOutputSchema(), fca.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeContentNotFound, errors.ErrCodeArtistNotFound, errors.ErrCodeUserNotFound, errors.ErrCodeValidationFailed},
			[]string{"content", "access"},
		},
		{
			fsa.TaskType, "Search Artists", "Finds artists by name with fuzzy matching",
			"listener", fsa.GetInputSchema(), fsa.GetOutputSchema(), fsa.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeSearchQueryFailed, errors.ErrCodeSearchTimeout, errors.ErrCodeValidationFailed},
			[]string{"search"},
		},
		{
			amt.TaskType, "Manage Tier", "Creates, updates or deletes an artist's subscription tier",
			"artist", amt.GetInputSchema(), amt.GetOutputSchema(), amt.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeArtistNotFound, errors.ErrCodeTierNotFound, errors.ErrCodeTierArtistMismatch, errors.ErrCodeTierLimitReached, errors.ErrCodeTierHasSubscribers, errors.ErrCodeTierGatesContent, errors.ErrCodeValidationFailed},
			[]string{"tier"},
		},
		{
			acc.TaskType, "Create Exclusive Content", "Publishes tier-gated content for an artist",
			"artist", acc.GetInputSchema(), acc.GetOutputSchema(), acc.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeArtistNotFound, errors.ErrCodeTierNotFound, errors.ErrCodeTierArtistMismatch, errors.ErrCodeValidationFailed},
			[]string{"content"},
		},
		{
			aca.TaskType, "Compute Analytics", "Computes subscriber counts, MRR and churn for an artist",
			"artist", aca.GetInputSchema(), aca.GetOutputSchema(), aca.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeArtistNotFound, errors.ErrCodeCacheFailed},
			[]string{"analytics"},
		},
		{
			fns.TaskType, "Notify Subscription Change", "Emails the fan and publishes the subscription event",
			"communication", fns.GetInputSchema(), fns.GetOutputSchema(), fns.DefaultConfig().Timeout,
			[]errors.ErrorCode{errors.ErrCodeNotificationSendFailed, errors.ErrCodeUserNotFound, errors.ErrCodeArtistNotFound, errors.ErrCodeValidationFailed},
			[]string{"notification", "ses", "sns"},
		},
	}
}

// buildRegistry turns the worker table into registry activities. Retries is
// the largest retry budget among the worker's error codes.
func buildRegistry(now time.Time) *registry.ActivityRegistry {
	reg := &registry.ActivityRegistry{
		Version:     registryVersion,
		LastUpdated: now.Format(time.RFC3339),
	}
	for _, w := range workerSpecs() {
		codes := make([]string, 0, len(w.errorCodes))
		retries := 0
		for _, c := range w.errorCodes {
			codes = append(codes, string(c))
			if n := errors.GetRetryCount(c); n > retries {
				retries = n
			}
		}
		reg.Activities = append(reg.Activities, registry.Activity{
			ID:           w.taskType,
			DisplayName:  w.displayName,
			Description:  w.description,
			Category:     w.category,
			Version:      registryVersion,
			TaskType:     w.taskType,
			InputSchema:  w.input,
			OutputSchema: w.output,
			ErrorCodes:   codes,
			Timeout:      w.timeout.String(),
			Retries:      retries,
			Tags:         w.tags,
		})
	}
	reg.Sort()
	return reg
}

func main() {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	generatePath := generateCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	validatePath := validateCmd.String("path", "configs/activity-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd.Parse(os.Args[2:])
		reg := buildRegistry(time.Now().UTC())
		if err := reg.Validate(); err != nil {
			fmt.Printf("Generated registry is invalid: %v\n", err)
			os.Exit(1)
		}
		if err := registry.Save(reg, *generatePath); err != nil {
			fmt.Printf("Error writing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d activities to %s\n", len(reg.Activities), *generatePath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Failed to load registry: %v\n", err)
			os.Exit(1)
		}
		if err := reg.Validate(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "help":
		fallthrough
	default:
		help()
	}
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  generate  Write the activity registry from the worker schemas
  validate  Validate an existing registry file
  help      Show this help message

Examples:
  registry-updater generate -path configs/activity-registry.json
  registry-updater validate -path configs/activity-registry.json`)
}

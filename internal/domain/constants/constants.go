// Package constants holds shared domain-level constants.
package constants

const (
	// EnvDevelop marks a local development environment.
	EnvDevelop = "develop"
	// EnvProduction marks the production environment.
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal publishes events over local HTTP, for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events through Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// InvalidationReasonPurposeChanged tags invalidations caused by a purpose
	// profile edit or re-onboarding.
	InvalidationReasonPurposeChanged = "purpose_profile_updated"
	// InvalidationReasonProfileDeleted tags invalidations caused by account
	// deactivation or deletion.
	InvalidationReasonProfileDeleted = "profile_deleted"
)

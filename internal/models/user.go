// Package models holds the domain types shared by all IdeaFlow components.
// The JSON tags define the persisted layout; bump common.SchemaVersion when
// they change.
package models

import "time"

// SubscriptionPlan is the closed set of billing tiers.
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "Free"
	PlanPro        SubscriptionPlan = "Pro"
	PlanEnterprise SubscriptionPlan = "Enterprise"
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// LaunchStatus tracks progress of the simulated mobile-store deployment.
type LaunchStatus string

const (
	LaunchNotStarted       LaunchStatus = "Not Started"
	LaunchAssetPreparation LaunchStatus = "Asset Preparation"
	LaunchStoreReview      LaunchStatus = "Store Review"
	LaunchLiveGooglePlay   LaunchStatus = "Live on Google Play"
	LaunchLiveAppStore     LaunchStatus = "Live on App Store"
)

var launchOrder = map[LaunchStatus]int{
	LaunchNotStarted:       0,
	LaunchAssetPreparation: 1,
	LaunchStoreReview:      2,
	LaunchLiveGooglePlay:   3,
	LaunchLiveAppStore:     4,
}

// Before reports whether s precedes other in the launch pipeline.
// Unknown statuses sort first.
func (s LaunchStatus) Before(other LaunchStatus) bool {
	return launchOrder[s] < launchOrder[other]
}

// User is the identity record for one account. PasswordHash holds a salted
// argon2 verifier, never a plaintext password; it gates only the local
// sign-in flow and is not an auth mechanism of record.
type User struct {
	ID                     string           `json:"id"`
	Email                  string           `json:"email"`
	Username               string           `json:"username"`
	PasswordHash           string           `json:"passwordHash,omitempty"`
	IsAdmin                bool             `json:"isAdmin"`
	NotificationsEnabled   bool             `json:"notificationsEnabled"`
	JoinedAt               time.Time        `json:"joinedAt"`
	SubscriptionPlan       SubscriptionPlan `json:"subscriptionPlan"`
	SubscriptionActive     bool             `json:"subscriptionActive"`
	ExternalSubscriptionID string           `json:"externalSubscriptionId,omitempty"`
	HasCompletedTour       bool             `json:"hasCompletedTour"`
	MobileLaunchStatus     LaunchStatus     `json:"mobileLaunchStatus,omitempty"`
}

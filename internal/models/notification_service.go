package models

// NotificationService delivers claim lifecycle notices. Implementations must
// not fail the calling workflow; delivery errors are logged and dropped.
type NotificationService interface {
	// ClaimCreated announces a freshly created claim to the admin channel.
	ClaimCreated(claim *Claim, drop *Drop, profile *Profile)
	// ClaimResolved tells the claimant their claim was paid or rejected.
	ClaimResolved(claim *Claim, drop *Drop, profile *Profile)
}

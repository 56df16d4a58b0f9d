package email

const (
	subjectOfferConfirmed = "✅ Your Garage Door Offer is Confirmed!"
	subjectAdminLeadFmt   = "🔔 New Confirmed Offer from %s"
)

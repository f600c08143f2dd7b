package behavior

import "github.com/mikey/email-triage/internal/keyword"

// Keyword lists shared between the bucket and trait tables. The two
// taxonomies score the same vocabulary, so each list is declared once.
var (
	workKeywords       = []string{"project", "meeting", "review", "budget", "report", "team", "deadline", "client"}
	newsletterKeywords = []string{"weekly", "newsletter", "update", "digest", "insights", "trends"}
	billKeywords       = []string{"bill", "payment", "due", "reminder", "invoice", "balance", "account"}
	socialKeywords     = []string{"weekend", "dinner", "plans", "party", "invite", "join", "meet up"}
	shoppingKeywords   = []string{"order", "purchase", "shipped", "delivery", "track", "confirmation"}
	travelKeywords     = []string{"flight", "hotel", "reservation", "booking", "trip", "travel", "itinerary"}
	jobSearchKeywords  = []string{"application", "interview", "position", "resume", "job", "career", "recruiting"}
	personalFinKeyword = []string{"account", "bank", "statement", "transaction", "credit", "debit"}
	personalKeywords   = []string{"hey", "hello", "hi", "chat", "thanks", "friend", "family"}
	updatesKeywords    = []string{"update", "notification", "alert", "status", "changes"}
	financeKeywords    = []string{"payment", "financial", "money", "fund", "invoice", "receipt"}
)

// Bucket labels.
const (
	BucketWork            = "Work"
	BucketNewsletters     = "Newsletters"
	BucketBills           = "Bills"
	BucketSocial          = "Social"
	BucketShopping        = "Shopping"
	BucketTravel          = "Travel"
	BucketJobSearch       = "Job Search"
	BucketPersonalFinance = "Personal Finance"
	BucketUpdates         = "Updates"
	BucketPersonal        = "Personal"
	BucketFinance         = "Finance"
	BucketUncategorized   = "Uncategorized"
)

// bucketTable is the category table used both to suggest buckets and to
// assign threads to them. Declaration order breaks scoring ties.
var bucketTable = keyword.Table{
	{Name: BucketWork, Keywords: workKeywords},
	{Name: BucketNewsletters, Keywords: newsletterKeywords},
	{Name: BucketBills, Keywords: billKeywords},
	{Name: BucketSocial, Keywords: socialKeywords},
	{Name: BucketShopping, Keywords: shoppingKeywords},
	{Name: BucketTravel, Keywords: travelKeywords},
	{Name: BucketJobSearch, Keywords: jobSearchKeywords},
	{Name: BucketPersonalFinance, Keywords: personalFinKeyword},
	{Name: BucketUpdates, Keywords: updatesKeywords},
	{Name: BucketPersonal, Keywords: personalKeywords},
	{Name: BucketFinance, Keywords: financeKeywords},
}

// defaultBuckets pads the suggestion list when too few categories score.
var defaultBuckets = []string{BucketWork, BucketPersonal, BucketShopping, BucketFinance, BucketUpdates}

// Trait names tracked in long-term memory.
const (
	TraitWorkEmailUser        = "workEmailUser"
	TraitNewsletterSubscriber = "newsletterSubscriber"
	TraitFrequentShopper      = "frequentShopper"
	TraitTraveler             = "traveler"
	TraitBillPayer            = "billPayer"
	TraitJobSearching         = "jobSearching"
	TraitSociallyActive       = "sociallyActive"
)

// traitTable maps each long-term trait to the keyword vocabulary that
// indicates it. A thread counts at most once per trait.
var traitTable = keyword.Table{
	{Name: TraitWorkEmailUser, Keywords: workKeywords},
	{Name: TraitNewsletterSubscriber, Keywords: newsletterKeywords},
	{Name: TraitFrequentShopper, Keywords: shoppingKeywords},
	{Name: TraitTraveler, Keywords: travelKeywords},
	{Name: TraitBillPayer, Keywords: billKeywords},
	{Name: TraitJobSearching, Keywords: jobSearchKeywords},
	{Name: TraitSociallyActive, Keywords: socialKeywords},
}

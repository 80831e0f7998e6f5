package domain

// Document is a schemaless record as read from or written to a collection.
// Documents returned by the store always carry "_id" as a string.
type Document map[string]any

// Filter is an equality predicate over document fields.
type Filter map[string]any

// Collection names.
const (
	CollectionUsers        = "user"
	CollectionProducts     = "productlisting"
	CollectionRequirements = "buyerrequirement"
	CollectionProjects     = "investmentproject"
	CollectionTransactions = "transaction"
	CollectionJobs         = "joblisting"
	CollectionApplications = "jobapplication"
	CollectionAuthEvents   = "authevent"

	// Declared by the schema but not written by any endpoint yet.
	CollectionCompanies      = "company"
	CollectionVendorProfiles = "vendorprofile"
	CollectionKYCRecords     = "kycrecord"
)

// Collections lists every collection the API knows about, as reported by
// GET /schema.
var Collections = []string{
	CollectionUsers,
	CollectionCompanies,
	CollectionVendorProfiles,
	CollectionProducts,
	CollectionRequirements,
	CollectionProjects,
	CollectionTransactions,
	CollectionJobs,
	CollectionApplications,
	CollectionKYCRecords,
}

// Status values written at creation time.
const (
	RequirementSubmitted = "submitted"
	TransactionInitiated = "initiated"
	ApplicationApplied   = "applied"
)

// Overview holds per-collection document counts for the admin summary.
type Overview struct {
	Users        int64 `json:"users"`
	Products     int64 `json:"products"`
	Requirements int64 `json:"requirements"`
	Projects     int64 `json:"projects"`
	Transactions int64 `json:"transactions"`
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
}

// Package leads provides the lead dataset providers and the deterministic
// qualification logic used by the qualify_leads capability.
package leads

import "context"

// Business is one row of the prospect dataset.
type Business struct {
	Name         string `json:"name" yaml:"name"`
	Industry     string `json:"industry" yaml:"industry"`
	Website      string `json:"website" yaml:"website"`
	Location     string `json:"location" yaml:"location"`
	ContactName  string `json:"contactName" yaml:"contact_name"`
	ContactTitle string `json:"contactTitle" yaml:"contact_title"`
	ContactEmail string `json:"contactEmail" yaml:"contact_email"`
}

// Provider supplies the candidate dataset. Injected at construction so tests
// can substitute fixtures without touching package state.
type Provider interface {
	Businesses(ctx context.Context) ([]Business, error)
}

// StaticProvider serves a fixed in-memory dataset.
type StaticProvider struct {
	rows []Business
}

// NewStaticProvider creates a provider over a fixed slice. The slice is
// copied; callers cannot mutate the dataset afterwards.
func NewStaticProvider(rows []Business) *StaticProvider {
	copied := make([]Business, len(rows))
	copy(copied, rows)
	return &StaticProvider{rows: copied}
}

// Businesses returns the dataset.
func (p *StaticProvider) Businesses(ctx context.Context) ([]Business, error) {
	out := make([]Business, len(p.rows))
	copy(out, p.rows)
	return out, nil
}

// DefaultDataset returns the built-in prospect dataset: ten local businesses,
// seven of which carry decision-maker contact titles.
func DefaultDataset() []Business {
	return []Business{
		{
			Name:         "Harbor Lights Dental",
			Industry:     "dental clinic",
			Website:      "harborlightsdental.example",
			Location:     "Portsmouth, NH",
			ContactName:  "Maria Vasquez",
			ContactTitle: "Owner",
			ContactEmail: "maria@harborlightsdental.example",
		},
		{
			Name:         "Ridgeview Roofing",
			Industry:     "roofing contractor",
			Website:      "ridgeviewroofing.example",
			Location:     "Boulder, CO",
			ContactName:  "Dan Okafor",
			ContactTitle: "Founder",
			ContactEmail: "dan@ridgeviewroofing.example",
		},
		{
			Name:         "Bluebird Bakery",
			Industry:     "bakery",
			Website:      "bluebirdbakery.example",
			Location:     "Asheville, NC",
			ContactName:  "Sophie Tran",
			ContactTitle: "Owner",
			ContactEmail: "sophie@bluebirdbakery.example",
		},
		{
			Name:         "Cascade Physical Therapy",
			Industry:     "physical therapy",
			Website:      "cascadept.example",
			Location:     "Bend, OR",
			ContactName:  "Priya Raman",
			ContactTitle: "Clinic Director",
			ContactEmail: "priya@cascadept.example",
		},
		{
			Name:         "Ironwood Landscaping",
			Industry:     "landscaping",
			Website:      "ironwoodlandscaping.example",
			Location:     "Ann Arbor, MI",
			ContactName:  "Luis Herrera",
			ContactTitle: "President",
			ContactEmail: "luis@ironwoodlandscaping.example",
		},
		{
			Name:         "Summit Auto Repair",
			Industry:     "auto repair",
			Website:      "summitautorepair.example",
			Location:     "Salt Lake City, UT",
			ContactName:  "Janet Muir",
			ContactTitle: "Office Manager",
			ContactEmail: "janet@summitautorepair.example",
		},
		{
			Name:         "Willow Creek Yoga",
			Industry:     "yoga studio",
			Website:      "willowcreekyoga.example",
			Location:     "Madison, WI",
			ContactName:  "Aisha Bell",
			ContactTitle: "Founder",
			ContactEmail: "aisha@willowcreekyoga.example",
		},
		{
			Name:         "Lakeside Accounting Group",
			Industry:     "accounting",
			Website:      "lakesideaccounting.example",
			Location:     "Minneapolis, MN",
			ContactName:  "Greg Sandoval",
			ContactTitle: "Managing Partner",
			ContactEmail: "greg@lakesideaccounting.example",
		},
		{
			Name:         "Copper Kettle Catering",
			Industry:     "catering",
			Website:      "copperkettlecatering.example",
			Location:     "Santa Fe, NM",
			ContactName:  "Nina Petrov",
			ContactTitle: "Marketing Assistant",
			ContactEmail: "nina@copperkettlecatering.example",
		},
		{
			Name:         "Evergreen Pet Clinic",
			Industry:     "veterinary clinic",
			Website:      "evergreenpetclinic.example",
			Location:     "Tacoma, WA",
			ContactName:  "Sam Whitfield",
			ContactTitle: "Receptionist",
			ContactEmail: "sam@evergreenpetclinic.example",
		},
	}
}

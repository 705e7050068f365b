// Package catalog holds the fixed airline set and the airport directory used
// by search intake.
package catalog

import (
	"strings"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// MinSuggestQuery is the shortest query that produces airport suggestions.
const MinSuggestQuery = 2

var airlines = []domain.Airline{
	{ID: "indigo", Name: "IndiGo"},
	{ID: "airIndia", Name: "Air India"},
	{ID: "spiceJet", Name: "SpiceJet"},
	{ID: "vistara", Name: "Vistara"},
	{ID: "goAir", Name: "Go Air"},
}

var airports = []domain.Airport{
	{Code: "DEL", Name: "Indira Gandhi International Airport", City: "Delhi"},
	{Code: "BOM", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai"},
	{Code: "MAA", Name: "Chennai International Airport", City: "Chennai"},
	{Code: "BLR", Name: "Kempegowda International Airport", City: "Bangalore"},
	{Code: "CCU", Name: "Netaji Subhas Chandra Bose International Airport", City: "Kolkata"},
	{Code: "HYD", Name: "Rajiv Gandhi International Airport", City: "Hyderabad"},
	{Code: "COK", Name: "Cochin International Airport", City: "Kochi"},
	{Code: "PNQ", Name: "Pune Airport", City: "Pune"},
	{Code: "AMD", Name: "Sardar Vallabhbhai Patel International Airport", City: "Ahmedabad"},
	{Code: "GOI", Name: "Goa International Airport (Dabolim)", City: "Goa"},
	{Code: "IXC", Name: "Shaheed Bhagat Singh International Airport", City: "Chandigarh"},
	{Code: "JAI", Name: "Jaipur International Airport", City: "Jaipur"},
	{Code: "LKO", Name: "Chaudhary Charan Singh International Airport", City: "Lucknow"},
	{Code: "BBI", Name: "Biju Patnaik International Airport", City: "Bhubaneswar"},
	{Code: "TRV", Name: "Trivandrum International Airport", City: "Thiruvananthapuram"},
	{Code: "IXR", Name: "Birsa Munda Airport", City: "Ranchi"},
	{Code: "PAT", Name: "Jay Prakash Narayan Airport", City: "Patna"},
	{Code: "SXR", Name: "Sheikh ul-Alam International Airport", City: "Srinagar"},
	{Code: "DIB", Name: "Dibrugarh Airport", City: "Dibrugarh"},
	{Code: "GAU", Name: "Lokpriya Gopinath Bordoloi International Airport", City: "Guwahati"},
	{Code: "IXB", Name: "Bagdogra Airport", City: "Siliguri"},
	{Code: "VNS", Name: "Lal Bahadur Shastri International Airport", City: "Varanasi"},
	{Code: "NAG", Name: "Dr. Babasaheb Ambedkar International Airport", City: "Nagpur"},
	{Code: "IXM", Name: "Madurai Airport", City: "Madurai"},
	{Code: "TIR", Name: "Tirupati Airport", City: "Tirupati"},
	{Code: "IXE", Name: "Mangalore International Airport", City: "Mangalore"},
	{Code: "RAJ", Name: "Rajkot Airport", City: "Rajkot"},
	{Code: "BDQ", Name: "Vadodara Airport", City: "Vadodara"},
	{Code: "JLR", Name: "Jabalpur Airport", City: "Jabalpur"},
	{Code: "STV", Name: "Surat Airport", City: "Surat"},
	{Code: "BHO", Name: "Raja Bhoj Airport", City: "Bhopal"},
	{Code: "DHM", Name: "Gaggal Airport", City: "Dharamshala"},
	{Code: "IXZ", Name: "Veer Savarkar International Airport", City: "Port Blair"},
	{Code: "LEH", Name: "Kushok Bakula Rimpochee Airport", City: "Leh"},
}

// Airlines returns a copy of the fixed airline set.
func Airlines() []domain.Airline {
	out := make([]domain.Airline, len(airlines))
	copy(out, airlines)
	return out
}

func Airports() []domain.Airport {
	out := make([]domain.Airport, len(airports))
	copy(out, airports)
	return out
}

func Airport(code string) (domain.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range airports {
		if a.Code == code {
			return a, true
		}
	}
	return domain.Airport{}, false
}

// Suggest matches the query against code, city and name, case-insensitively.
func Suggest(query string) []domain.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinSuggestQuery {
		return []domain.Airport{}
	}

	out := make([]domain.Airport, 0)
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.Code), q) ||
			strings.Contains(strings.ToLower(a.City), q) ||
			strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

package application

import (
	"github.com/globehunters/flight-bff/pkg/domain"
)

// SearchAirportsData carries a free-text airport search.
type SearchAirportsData struct {
	Query string
	Limit int
}

type searchAirportsQuery struct {
	data SearchAirportsData
}

func (q searchAirportsQuery) QueryName() string {
	return "SearchAirports"
}

func (q searchAirportsQuery) Payload() SearchAirportsData {
	return q.data
}

// NewSearchAirportsQuery creates a new airport search query.
func NewSearchAirportsQuery(data SearchAirportsData) domain.Query[SearchAirportsData] {
	return searchAirportsQuery{data: data}
}

// FindAirportByCodeData carries an exact IATA code lookup.
type FindAirportByCodeData struct {
	Code string
}

type findAirportByCodeQuery struct {
	data FindAirportByCodeData
}

func (q findAirportByCodeQuery) QueryName() string {
	return "FindAirportByCode"
}

func (q findAirportByCodeQuery) Payload() FindAirportByCodeData {
	return q.data
}

func NewFindAirportByCodeQuery(data FindAirportByCodeData) domain.Query[FindAirportByCodeData] {
	return findAirportByCodeQuery{data: data}
}

// AirportSetData is the shared payload of the queries that return a plain
// airport set: full list, popular hubs, and refresh.
type AirportSetData struct{}

type listAirportsQuery struct {
	data AirportSetData
}

func (q listAirportsQuery) QueryName() string {
	return "ListAirports"
}

func (q listAirportsQuery) Payload() AirportSetData {
	return q.data
}

func NewListAirportsQuery() domain.Query[AirportSetData] {
	return listAirportsQuery{}
}

type popularAirportsQuery struct {
	data AirportSetData
}

func (q popularAirportsQuery) QueryName() string {
	return "PopularAirports"
}

func (q popularAirportsQuery) Payload() AirportSetData {
	return q.data
}

func NewPopularAirportsQuery() domain.Query[AirportSetData] {
	return popularAirportsQuery{}
}

type refreshAirportsQuery struct {
	data AirportSetData
}

func (q refreshAirportsQuery) QueryName() string {
	return "RefreshAirports"
}

func (q refreshAirportsQuery) Payload() AirportSetData {
	return q.data
}

func NewRefreshAirportsQuery() domain.Query[AirportSetData] {
	return refreshAirportsQuery{}
}

// Package event provides the date types shared by the extraction and rendering
// pipelines.
//
// The event package defines DateRange (a start date with an optional inclusive end),
// the per-semester event mapping scraped from the registrar calendar, and the holiday
// set persisted between runs. It also parses the free-text date expressions found on
// the registrar page, such as "August 29 - September 2" or "Mon., Nov. 20".
package event

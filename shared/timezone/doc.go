// Package timezone pins every wall-clock value to the application timezone.
//
// The zone comes from APP_TIMEZONE (an IANA name such as "Europe/London")
// and is loaded lazily on first use; an empty or unknown name falls back to
// UTC. Appointment and time slot dates are stored as instants, so:
//
//	d, err := timezone.ParseDate("2024-06-01")   // midnight in the app zone
//	start, end := timezone.DayRange(d)           // [start, end) of that day
//	timezone.Format(d, timezone.LayoutDate)      // "2024-06-01"
package timezone

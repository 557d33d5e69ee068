package timezone

import "time"

const DefaultTimezone = "Asia/Jakarta"

// Location resolve o fuso oficial do serviço (WIB).
func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

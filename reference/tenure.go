package reference

import "time"

// Tenure maps a justice surname to the date their service began.
type Tenure map[string]time.Time

// Start returns the tenure start date for surname.
func (t Tenure) Start(surname string) (time.Time, bool) {
	d, ok := t[surname]
	return d, ok
}

func mustTenure(raw map[string]string) Tenure {
	t := make(Tenure, len(raw))
	for name, iso := range raw {
		d, err := time.Parse(time.DateOnly, iso)
		if err != nil {
			panic("reference: bad tenure date for " + name + ": " + err.Error())
		}
		t[name] = d
	}
	return t
}

// JusticeTenure returns the start date of every justice seated since 1937.
func JusticeTenure() Tenure {
	return mustTenure(map[string]string{
		"Reed":        "1938-01-25",
		"Douglas":     "1939-04-17",
		"Frankfurter": "1939-01-30",
		"Black":       "1937-08-19",
		"Clark":       "1949-09-18",
		"Minton":      "1949-10-04",
		"Warren":      "1954-03-01",
		"Harlan":      "1955-03-16",
		"Brennan":     "1956-10-16",
		"Whittaker":   "1957-03-25",
		"Stewart":     "1958-10-14",
		"White":       "1962-04-16",
		"Goldberg":    "1962-10-01",
		"Fortas":      "1965-10-04",
		"Marshall":    "1967-10-02",
		"Burger":      "1969-06-23",
		"Blackmun":    "1970-06-09",
		"Powell":      "1972-01-07",
		"Rehnquist":   "1972-01-07",
		"Stevens":     "1975-12-19",
		"O'Connor":    "1981-09-25",
		"Scalia":      "1986-11-26",
		"Kennedy":     "1988-02-18",
		"Souter":      "1990-10-09",
		"Thomas":      "1991-10-23",
		"Ginsburg":    "1993-09-10",
		"Breyer":      "1994-09-03",
		"Roberts":     "2005-09-29",
		"Alito":       "2006-01-31",
		"Sotomayor":   "2009-09-08",
		"Kagan":       "2010-09-07",
		"Gorsuch":     "2017-04-10",
		"Kavanaugh":   "2018-10-06",
		"Barrett":     "2020-10-27",
	})
}

// ChiefJusticeTenure returns the start date of each chief justice's term as
// chief. Only these speakers open arguments with an introduction.
func ChiefJusticeTenure() Tenure {
	return mustTenure(map[string]string{
		"Burger":    "1969-06-09",
		"Rehnquist": "1986-09-17",
		"Roberts":   "2005-09-29",
	})
}

// JusticeGender maps a justice's full name, as written in the corpus
// without commas, to their gender.
func JusticeGender() map[string]Gender {
	return map[string]Gender{
		"Anthony M. Kennedy":     Male,
		"Antonin Scalia":         Male,
		"Byron R. White":         Male,
		"David H. Souter":        Male,
		"Elena Kagan":            Female,
		"John G. Roberts Jr.":    Male,
		"John Paul Stevens":      Male,
		"Ruth Bader Ginsburg":    Female,
		"Samuel A. Alito Jr.":    Male,
		"Sandra Day O'Connor":    Female,
		"Sonia Sotomayor":        Female,
		"Stephen G. Breyer":      Male,
		"Thurgood Marshall":      Male,
		"William H. Rehnquist":   Male,
		"Warren E. Burger":       Male,
		"Neil Gorsuch":           Male,
		"Harry A. Blackmun":      Male,
		"Brett M. Kavanaugh":     Male,
		"Charles E. Whittaker":   Male,
		"Clarence Thomas":        Male,
		"Earl Warren":            Male,
		"Hugo L. Black":          Male,
		"Lewis F. Powell Jr.":    Male,
		"Potter Stewart":         Male,
		"William J. Brennan Jr.": Male,
		"William O. Douglas":     Male,
	}
}

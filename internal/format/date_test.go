package format

import "testing"

func yr(n int) *int { return &n }

func TestDateFormat1(t *testing.T) {
	d, ok := DateFormat1("24 Mar")
	if !ok || d.Day != 24 || d.Month != 3 || d.Year != nil {
		t.Errorf("DateFormat1 = %+v, %v", d, ok)
	}
}

func TestDateFormat2(t *testing.T) {
	d, ok := DateFormat2("24 March 2025")
	if !ok || d.Day != 24 || d.Month != 3 || d.Year == nil || *d.Year != 2025 {
		t.Errorf("DateFormat2 = %+v, %v", d, ok)
	}
}

func TestDateFormat3(t *testing.T) {
	d, ok := DateFormat3("Mar 24, 2025")
	if !ok || d.Day != 24 || d.Month != 3 || d.Year == nil || *d.Year != 2025 {
		t.Errorf("DateFormat3 = %+v, %v", d, ok)
	}
}

func TestDateFormat4(t *testing.T) {
	d, ok := DateFormat4("24/03/2020")
	if !ok || d.Day != 24 || d.Month != 3 || d.Year == nil || *d.Year != 2020 {
		t.Errorf("DateFormat4 = %+v, %v", d, ok)
	}
}

func TestDateFormat5(t *testing.T) {
	d, ok := DateFormat5("24/03/25")
	if !ok || d.Year == nil || *d.Year != 2025 {
		t.Errorf("DateFormat5 = %+v, %v", d, ok)
	}
}

func TestDateFormat6(t *testing.T) {
	d, ok := DateFormat6("3/24")
	if !ok || d.Day != 24 || d.Month != 3 || d.Year != nil {
		t.Errorf("DateFormat6 = %+v, %v", d, ok)
	}
}

func TestDateFormat7(t *testing.T) {
	d, ok := DateFormat7("24-03-23")
	if !ok || d.Year == nil || *d.Year != 2023 {
		t.Errorf("DateFormat7 = %+v, %v", d, ok)
	}
	d, ok = DateFormat7("24-3-2023")
	if !ok || d.Year == nil || *d.Year != 2023 {
		t.Errorf("DateFormat7 full year = %+v, %v", d, ok)
	}
}

func TestDateFormats_RejectMismatch(t *testing.T) {
	if _, ok := DateFormat2("24 Mar"); ok {
		t.Error("DateFormat2 should require a year")
	}
	if _, ok := DateFormat1("2024-03-24"); ok {
		t.Error("DateFormat1 should reject ISO dates")
	}
}

package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ServiceDuration фиксированная длительность услуги.
// Каждый слот занимает ровно один час; EndUTC выводится из StartUTC.
const ServiceDuration = time.Hour

// Validation constants
const (
	MinNameLength  = 2
	MaxNameLength  = 100
	MinPhoneLength = 7
	MaxPhoneLength = 20
)

// ActiveStatuses статусы, при которых бронирование занимает слот.
// Используется при подсчете доступности и в partial unique index в БД.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

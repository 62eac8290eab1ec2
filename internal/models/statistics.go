package models

// MonthlyCount is one bucket of the participants trend.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ProgrammeStatistics is the dashboard roll-up over programmes and attendance.
type ProgrammeStatistics struct {
	TotalProgrammes     int                     `json:"total_programmes"`
	ActiveProgrammes    int                     `json:"active_programmes"`
	CompletedProgrammes int                     `json:"completed_programmes"`
	AttendanceRate      float64                 `json:"attendance_rate"`
	ProgrammesByType    map[string]int          `json:"programmes_by_type"`
	ProgrammesByStatus  map[ProgrammeStatus]int `json:"programmes_by_status"`
	ParticipantsTrend   []MonthlyCount          `json:"participants_trend"`
	TotalParticipants   int                     `json:"total_participants"`
}

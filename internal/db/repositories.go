package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Challenges *ChallengeRepository
	Deposits   *DepositRepository
	AuditLogs  *AuditLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Challenges: NewChallengeRepository(database),
		Deposits:   NewDepositRepository(database),
		AuditLogs:  NewAuditLogRepository(database),
	}
}

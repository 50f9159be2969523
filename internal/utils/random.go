package utils

import (
	"math/rand"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

var commonSurnames = []string{
	"Novák", "Svoboda", "Novotný", "Dvořák", "Černý", "Procházka", "Kučera",
	"Veselý", "Horák", "Němec", "Marek", "Pospíšil", "Pokorný", "Hájek",
	"Král", "Jelínek", "Růžička", "Beneš", "Fiala", "Sedláček",
}

var commonGivenNames = []string{
	"Jiří", "Jan", "Petr", "Josef", "Pavel", "Martin", "Tomáš", "Jaroslav",
	"Miroslav", "Zdeněk", "František", "Václav", "Karel", "Milan", "Michal",
	"Vladimír", "Lukáš", "David", "Ladislav", "Jakub",
}

func GenerateRandomCzechName() string {
	return commonGivenNames[rand.Intn(len(commonGivenNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var memberRoles = []domain.Role{
	domain.RoleHasic,
	domain.RoleHasic,
	domain.RoleHasic,
	domain.RoleStrojnik,
	domain.RoleVD,
}

func GenerateRandomRoles() []string {
	// plain firefighters dominate, qualified roles stay rare
	return []string{string(memberRoles[rand.Intn(len(memberRoles))])}
}

var uidAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomUID(length int) string {
	uid := make([]rune, length)
	for i := range uid {
		uid[i] = uidAlphabet[rand.Intn(len(uidAlphabet))]
	}
	return string(uid)
}

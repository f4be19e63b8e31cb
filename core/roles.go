package core

import "github.com/huangsam/cybercompass/schema"

// WorkRoleFor returns the work role for a dominant category and knowledge level.
// Unknown levels fall back to the entry level role of the same aptitude.
func WorkRoleFor(dominant schema.Category, level int) schema.WorkRole {
	aptitude := schema.AptitudeFor(dominant)
	if role, ok := schema.WorkRoles[schema.AptitudeKey{Aptitude: aptitude, Level: level}]; ok {
		return role
	}
	return schema.WorkRoles[schema.AptitudeKey{Aptitude: aptitude, Level: schema.EntryLevel}]
}

// CertificationsFor returns at most two certifications for a dominant category
// and knowledge level, using the same fallback as WorkRoleFor.
func CertificationsFor(dominant schema.Category, level int) []schema.Certification {
	aptitude := schema.AptitudeFor(dominant)
	certs, ok := schema.Certifications[schema.AptitudeKey{Aptitude: aptitude, Level: level}]
	if !ok {
		certs = schema.Certifications[schema.AptitudeKey{Aptitude: aptitude, Level: schema.EntryLevel}]
	}
	out := make([]schema.Certification, 0, 2)
	for _, c := range certs {
		if len(out) == 2 {
			break
		}
		out = append(out, c)
	}
	return out
}

// NistRoleID is the NIST work role identifier shown on the specialist dossier.
func NistRoleID(role schema.WorkRole) string {
	return string(role.ID) + "-001"
}

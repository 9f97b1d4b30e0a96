package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&OrganizationModel{},
		&UserModel{},
		&TemplateModel{},
		&ContractModel{},
		&ContractVersionModel{},
		&ApprovalModel{},
		&AuditLogModel{},
	}
}

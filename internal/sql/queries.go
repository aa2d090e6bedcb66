package sql

import "embed"

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_assessment.sql
var InsertAssessment string

//go:embed queries/get_assessment.sql
var GetAssessment string

//go:embed queries/batch_stats.sql
var BatchStats string

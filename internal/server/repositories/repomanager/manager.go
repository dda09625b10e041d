// Package repomanager hands out repositories bound to a DB handle, so a
// service can run several repositories inside one transaction.
package repomanager

import (
	"github.com/gpai/case-portal/internal/dbx"
	"github.com/gpai/case-portal/internal/server/repositories/submissions"
	"github.com/gpai/case-portal/internal/server/repositories/tokens"
	"github.com/gpai/case-portal/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Submissions(db dbx.DBTX) submissions.Repository
}

package mysql

const createApprovalsSQL = `
CREATE TABLE IF NOT EXISTS review_approvals (
  id         VARCHAR(64)  NOT NULL PRIMARY KEY,
  approved   TINYINT(1)   NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)
`

const upsertApprovalSQL = `
INSERT INTO review_approvals (id, approved)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  approved   = VALUES(approved),
  updated_at = CURRENT_TIMESTAMP
`

const selectApprovalsSQL = `
SELECT id, approved
FROM review_approvals
`

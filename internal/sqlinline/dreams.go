package sqlinline

const QInsertDream = `--sql 7f1c2a9e-4b63-4f0d-8a52-3dd9f0b1c44a
INSERT INTO dreams (id, title, photo_url, video_prompt, video_status)
VALUES (gen_random_uuid(), $1, $2, $3, $4)
RETURNING id, title, photo_url, video_url, video_prompt, video_status, error_message, created_at, updated_at;
`

const QUpdateDream = `--sql 3a8de417-92c5-4f61-b0e7-51c2aa96d8f3
UPDATE dreams
SET title         = COALESCE($2, title),
    photo_url     = COALESCE($3, photo_url),
    video_prompt  = COALESCE($4, video_prompt),
    video_url     = COALESCE($5, video_url),
    video_status  = COALESCE($6, video_status),
    error_message = CASE WHEN $8 THEN NULL ELSE COALESCE($7, error_message) END,
    updated_at    = NOW()
WHERE id = $1
RETURNING id, title, photo_url, video_url, video_prompt, video_status, error_message, created_at, updated_at;
`

const QSelectDreamByID = `--sql 9d0b6f52-1e84-4c3b-a6f0-7be49d25c1e8
SELECT id, title, photo_url, video_url, video_prompt, video_status, error_message, created_at, updated_at
FROM dreams
WHERE id = $1;
`

const QSelectLatestDream = `--sql c52a71fd-38c6-40ab-9e14-f06d85b27a91
SELECT id, title, photo_url, video_url, video_prompt, video_status, error_message, created_at, updated_at
FROM dreams
ORDER BY created_at DESC
LIMIT 1;
`

const QDeleteDream = `--sql e4b90c36-57fa-43d2-8c1b-20a4fe6d9b05
DELETE FROM dreams
WHERE id = $1;
`

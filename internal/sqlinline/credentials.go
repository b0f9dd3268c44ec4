package sqlinline

const QSelectIntegrationToken = `--sql b7d3f1a8-62c4-47e9-9f25-8a1d04c6e3b2
SELECT token
FROM integration_tokens
WHERE provider = $1;
`

// Package helpdesk provides a local, CLI-based AI helpdesk. It ingests
// documents from crawled websites and Notion exports, embeds them via an
// external provider, persists chunk+vector records in a local store, and
// answers natural language questions grounded in retrieved passages with
// citations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, openai/).
package helpdesk

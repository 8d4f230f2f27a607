package models

// SingletonID is the fixed primary key of single-row content such as the
// about page and the home page. Pinning the key lets concurrent first reads
// converge on one row.
const SingletonID uint = 1

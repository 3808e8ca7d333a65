package sqlinline

const QInsertLibraryItem = `--sql d83e9a1b-26ef-4799-befd-d79af00a953b
insert into library_items (id, kind, title, description, content, tags, is_public, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::jsonb, $6::text[], $7::boolean, now(), now())
returning created_at, updated_at;
`

const QSelectLibraryItem = `--sql c6febfe5-7ea9-4e9f-8634-0894bc5b5f25
select id::text, kind, title, description, content::text, tags, is_public, created_at, updated_at
from library_items
where kind = $1::text and id = $2::uuid
limit 1;
`

const QListLibraryItems = `--sql c4c1632a-8831-49ea-bbd7-0b0af99ac6c9
select id::text, kind, title, description, content::text, tags, is_public, created_at, updated_at
from library_items
where kind = $1::text
order by created_at desc
limit $2::int offset $3::int;
`

const QDeleteLibraryItem = `--sql 984638f8-e1f8-404a-b73d-b40a684c77c4
delete from library_items
where kind = $1::text and id = $2::uuid;
`
